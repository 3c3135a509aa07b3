package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reaxo/reaxo/internal/identity"
)

// profileForm edits the signed-in user's display name and avatar. The avatar
// field takes a local image path; saving uploads the file first and writes
// the profile with the returned URL.
type profileForm struct {
	inputs   []textinput.Model
	focus    int
	errMsg   string
	busy     bool
	identity *identity.Client
}

func newProfileForm(client *identity.Client, user *identity.User) profileForm {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 128
	if user != nil {
		name.SetValue(user.FullName)
	}
	name.Focus()

	avatar := textinput.New()
	avatar.Placeholder = "avatar image path (optional)"
	avatar.CharLimit = 512

	return profileForm{
		inputs:   []textinput.Model{name, avatar},
		identity: client,
	}
}

func (f *profileForm) handleKey(msg tea.KeyMsg, token string) tea.Cmd {
	if f.busy {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.inputs)
		f.refocus()
		return nil
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
		f.refocus()
		return nil
	case "enter":
		if f.focus < len(f.inputs)-1 {
			f.focus++
			f.refocus()
			return nil
		}
		return f.submit(token)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *profileForm) refocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *profileForm) submit(token string) tea.Cmd {
	name := strings.TrimSpace(f.inputs[0].Value())
	path := strings.TrimSpace(f.inputs[1].Value())

	f.busy = true
	f.errMsg = ""
	client := f.identity

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		avatarURL := ""
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return ProfileSavedMsg{Err: err}
			}
			avatarURL, err = client.UploadAvatar(ctx, token, filepath.Base(path), data)
			if err != nil {
				return ProfileSavedMsg{Err: err}
			}
		}

		user, err := client.UpdateProfile(ctx, token, name, avatarURL)
		return ProfileSavedMsg{User: user, Err: err}
	}
}

func (f *profileForm) view(width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("reaxo") + "\n\n")
	b.WriteString(promptStyle.Render("Edit profile") + "\n\n")

	for _, in := range f.inputs {
		b.WriteString(in.View() + "\n")
	}

	if f.busy {
		b.WriteString("\n" + mutedStyle.Render("Saving..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg))
	}

	b.WriteString("\n\n" + helpStyle.Render("enter save · esc back"))

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}
