// Package tui is the terminal dashboard: one prompt fanned out to every
// enabled model, streamed answers side by side, with a sidebar for picking
// the participant set.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/reaxo/reaxo/internal/identity"
	"github.com/reaxo/reaxo/internal/orchestrator"
)

type screen int

const (
	screenAuth screen = iota
	screenChat
	screenProfile
)

const sidebarWidth = 34

// suggestions seed the empty conversation; pressing the matching digit drops
// one into the prompt box.
var suggestions = []string{
	"Explain quantum computing simply",
	"Write a haiku about technology",
	"What are 3 startup ideas for AI?",
	"How do I learn to code?",
}

type Model struct {
	orch     *orchestrator.Orchestrator
	identity *identity.Client
	session  *identity.SessionStore

	screen  screen
	auth    authForm
	profile profileForm
	user    *identity.User
	token   string

	textarea textarea.Model
	viewport viewport.Model
	spin     spinner.Model

	snapshot     orchestrator.Snapshot
	focusSidebar bool
	sidebarIndex int

	width  int
	height int
	ready  bool
}

// New builds the dashboard model. identityClient and session may be nil, in
// which case the auth screen is skipped and the session runs as guest.
func New(orch *orchestrator.Orchestrator, identityClient *identity.Client, session *identity.SessionStore) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask every model at once..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		orch:     orch,
		identity: identityClient,
		session:  session,
		textarea: ta,
		viewport: viewport.New(80, 20),
		spin:     sp,
		screen:   screenChat,
	}

	if identityClient != nil {
		m.screen = screenAuth
		m.auth = newAuthForm(identityClient)
	}

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.spin.Tick,
		listenUpdates(m.orch.Updates()),
	}
	if cmd := m.restoreSession(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// restoreSession resumes a previous sign-in from the stored token.
func (m Model) restoreSession() tea.Cmd {
	if m.identity == nil || m.session == nil {
		return nil
	}
	token := m.session.Load()
	if token == "" {
		return nil
	}
	client := m.identity
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := client.GetUser(ctx, token)
		return AuthResultMsg{User: user, Token: token, Err: err}
	}
}
