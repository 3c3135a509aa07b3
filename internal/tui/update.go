package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reaxo/reaxo/internal/catalog"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatWidth := m.width - sidebarWidth
		if chatWidth < 20 {
			chatWidth = 20
		}
		m.viewport.Width = chatWidth
		m.viewport.Height = m.height - 7
		m.textarea.SetWidth(chatWidth)
		m.ready = true
		m.refreshViewport()
		return m, nil

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.refreshViewport()
		m.viewport.GotoBottom()
		// Re-arm the pump for the next snapshot.
		return m, listenUpdates(m.orch.Updates())

	case TurnSettledMsg:
		m.refreshViewport()
		return m, nil

	case AuthResultMsg:
		m.auth.busy = false
		if msg.Err != nil {
			// A failed session restore just means signing in again.
			m.auth.errMsg = msg.Err.Error()
			return m, nil
		}
		m.user = msg.User
		m.token = msg.Token
		m.screen = screenChat
		if m.session != nil && msg.Token != "" {
			_ = m.session.Save(msg.Token)
		}
		return m, nil

	case ProfileSavedMsg:
		m.profile.busy = false
		if msg.Err != nil {
			m.profile.errMsg = msg.Err.Error()
			return m, nil
		}
		m.user = msg.User
		m.screen = screenChat
		return m, nil

	case ResetSentMsg:
		m.auth.busy = false
		if msg.Err != nil {
			m.auth.errMsg = msg.Err.Error()
		} else {
			m.auth.setMode(authSignIn)
			m.auth.infoMsg = "Check " + msg.Email + " for the reset link"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.screen == screenAuth {
		if msg.String() == "esc" {
			// Guest mode: full dashboard, nothing persisted.
			m.screen = screenChat
			return m, nil
		}
		cmd := m.auth.handleKey(msg)
		return m, cmd
	}

	if m.screen == screenProfile {
		if msg.String() == "esc" {
			m.screen = screenChat
			return m, nil
		}
		cmd := m.profile.handleKey(msg, m.token)
		return m, cmd
	}

	switch msg.String() {
	case "tab":
		m.focusSidebar = !m.focusSidebar
		if m.focusSidebar {
			m.textarea.Blur()
		} else {
			m.textarea.Focus()
		}
		return m, nil

	case "ctrl+a":
		m.orch.EnableAll()
		return m, nil

	case "ctrl+d":
		m.orch.DisableAll()
		return m, nil

	case "ctrl+l":
		m.orch.ClearHistory()
		return m, nil

	case "ctrl+p":
		// Profile editing needs a signed-in session.
		if m.user != nil && m.identity != nil {
			m.profile = newProfileForm(m.identity, m.user)
			m.screen = screenProfile
		}
		return m, nil
	}

	if m.focusSidebar {
		models := catalog.Models()
		switch msg.String() {
		case "up", "k":
			if m.sidebarIndex > 0 {
				m.sidebarIndex--
			}
			return m, nil
		case "down", "j":
			if m.sidebarIndex < len(models)-1 {
				m.sidebarIndex++
			}
			return m, nil
		case " ", "enter":
			m.orch.ToggleModel(models[m.sidebarIndex].ID)
			return m, nil
		case "x", "backspace":
			// Drop the highlighted model's answer from the latest turn,
			// like the dashboard's per-card remove button.
			turns := m.orch.Turns()
			if len(turns) > 0 {
				m.orch.RemoveModelFromTurn(turns[len(turns)-1].ID, models[m.sidebarIndex].ID)
			}
			return m, nil
		}
		return m, nil
	}

	if msg.String() == "enter" {
		return m.submit()
	}

	// On an untouched dashboard, a digit loads the matching suggestion.
	if len(m.orch.Turns()) == 0 && m.textarea.Value() == "" {
		if i := suggestionAt(msg.String()); i >= 0 {
			m.textarea.SetValue(suggestions[i])
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// suggestionAt maps a digit key to a suggestion index, -1 when out of range.
func suggestionAt(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+byte(len(suggestions)) {
		return -1
	}
	return int(key[0] - '1')
}

// submit hands the prompt to the orchestrator. The orchestrator enforces the
// preconditions itself; a refused submission leaves the input untouched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	done, ok := m.orch.SubmitTurn(context.Background(), m.textarea.Value())
	if !ok {
		return m, nil
	}
	m.textarea.Reset()
	return m, awaitSettled(done)
}
