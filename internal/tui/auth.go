package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reaxo/reaxo/internal/identity"
)

type authMode int

const (
	authSignIn authMode = iota
	authSignUp
	authForgot
)

// authForm is the pre-chat identity screen. Esc skips it entirely; the
// dashboard works the same for guests, minus profile persistence.
type authForm struct {
	mode     authMode
	inputs   []textinput.Model
	focus    int
	errMsg   string
	infoMsg  string
	busy     bool
	identity *identity.Client
}

func newAuthForm(client *identity.Client) authForm {
	f := authForm{identity: client}
	f.setMode(authSignIn)
	return f
}

func (f *authForm) setMode(mode authMode) {
	f.mode = mode
	f.errMsg = ""
	f.infoMsg = ""
	f.focus = 0

	labels := []string{"email", "password"}
	switch mode {
	case authSignUp:
		labels = []string{"full name", "email", "password"}
	case authForgot:
		labels = []string{"email"}
	}

	f.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 128
		if label == "password" {
			ti.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			ti.Focus()
		}
		f.inputs[i] = ti
	}
}

func (f *authForm) value(placeholder string) string {
	for _, in := range f.inputs {
		if in.Placeholder == placeholder {
			return strings.TrimSpace(in.Value())
		}
	}
	return ""
}

func (f *authForm) submit() tea.Cmd {
	email := f.value("email")
	password := f.value("password")
	name := f.value("full name")

	if email == "" || (f.mode != authForgot && password == "") {
		f.errMsg = "Please fill in every field"
		return nil
	}

	f.busy = true
	f.errMsg = ""
	client := f.identity
	mode := f.mode

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		switch mode {
		case authSignUp:
			user, err := client.SignUp(ctx, email, password, name)
			if err != nil {
				return AuthResultMsg{Err: err}
			}
			// The service issues tokens on sign-in only.
			_, token, err := client.SignIn(ctx, email, password)
			return AuthResultMsg{User: user, Token: token, Err: err}
		case authForgot:
			return ResetSentMsg{Email: email, Err: client.RequestPasswordReset(ctx, email)}
		default:
			user, token, err := client.SignIn(ctx, email, password)
			return AuthResultMsg{User: user, Token: token, Err: err}
		}
	}
}

func (f *authForm) handleKey(msg tea.KeyMsg) tea.Cmd {
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
		return f.submit()
	case "ctrl+s":
		if f.mode == authSignIn {
			f.setMode(authSignUp)
		} else {
			f.setMode(authSignIn)
		}
		return nil
	case "ctrl+r":
		f.setMode(authForgot)
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *authForm) refocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *authForm) view(width int) string {
	title := map[authMode]string{
		authSignIn: "Sign in",
		authSignUp: "Create account",
		authForgot: "Reset password",
	}[f.mode]

	var b strings.Builder
	b.WriteString(headerStyle.Render("reaxo") + "\n\n")
	b.WriteString(promptStyle.Render(title) + "\n\n")

	for _, in := range f.inputs {
		b.WriteString(in.View() + "\n")
	}

	if f.busy {
		b.WriteString("\n" + mutedStyle.Render("Working..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg))
	}
	if f.infoMsg != "" {
		b.WriteString("\n" + mutedStyle.Render(f.infoMsg))
	}

	b.WriteString("\n\n" + helpStyle.Render("enter submit · ctrl+s switch sign in/up · ctrl+r reset password · esc continue as guest"))

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}
