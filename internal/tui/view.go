package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reaxo/reaxo/internal/catalog"
	"github.com/reaxo/reaxo/internal/orchestrator"
)

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.screen == screenAuth {
		return m.auth.view(m.width)
	}
	if m.screen == screenProfile {
		return m.profile.view(m.width)
	}

	header := m.headerView()
	sidebar := m.sidebarView()
	chat := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.textarea.View(),
		m.helpView(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, chat, sidebar),
	)
}

func (m Model) headerView() string {
	title := headerStyle.Render("reaxo · compare models side by side")

	who := "guest"
	if m.user != nil {
		who = m.user.FullName
		if who == "" {
			who = m.user.Email
		}
	}
	status := mutedStyle.Render(fmt.Sprintf("  %s · %d models enabled", who, m.orch.EnabledCount()))
	if m.snapshot.Submitting {
		status += " " + m.spin.View()
	}
	return title + status
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(providerStyle.Render("MODELS") + "\n")

	index := 0
	grouped := catalog.GroupByProvider(catalog.Models())
	for _, provider := range catalog.Providers() {
		b.WriteString("\n" + providerStyle.Render(provider) + "\n")
		for _, model := range grouped[provider] {
			mark := "[ ] "
			if m.orch.Enabled(model.ID) {
				mark = "[x] "
			}
			line := mark + model.Name
			if m.focusSidebar && index == m.sidebarIndex {
				line = selectedStyle.Render(line)
			} else if m.orch.Enabled(model.ID) {
				line = lipgloss.NewStyle().Foreground(lipgloss.Color(model.Color)).Render(line)
			} else {
				line = mutedStyle.Render(line)
			}
			b.WriteString(line + "\n")
			index++
		}
	}

	return sidebarStyle.Width(sidebarWidth - 2).Height(m.height - 2).Render(b.String())
}

func (m Model) helpView() string {
	if m.focusSidebar {
		return helpStyle.Render("space toggle · x remove from last turn · ctrl+a all · ctrl+d none · tab back · ctrl+c quit")
	}
	help := "enter send · tab models · ctrl+l clear"
	if m.user != nil {
		help += " · ctrl+p profile"
	}
	return helpStyle.Render(help + " · ctrl+c quit")
}

// refreshViewport rebuilds the conversation transcript from the snapshot.
func (m *Model) refreshViewport() {
	width := m.viewport.Width - 4
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for i, turn := range m.snapshot.Turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(promptStyle.Render("❯ "+turn.Prompt) + "\n")
		for _, resp := range turn.Responses {
			b.WriteString(m.cardView(resp, width) + "\n")
		}
	}

	if len(m.snapshot.Turns) == 0 {
		b.WriteString(mutedStyle.Render("\nPick your models on the right and ask them all the same question.\n") + "\n")
		for i, s := range suggestions {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d. %s", i+1, s)) + "\n")
		}
		b.WriteString(helpStyle.Render("\n  press a number to load a suggestion") + "\n")
	}

	m.viewport.SetContent(b.String())
}

func (m *Model) cardView(resp orchestrator.ModelResponse, width int) string {
	name := resp.ModelID
	color := "245"
	if model, ok := catalog.Get(resp.ModelID); ok {
		name = model.Name
		color = model.Color
	}
	title := modelTitleStyle(color).Render(name)

	var body string
	switch {
	case resp.Err != "":
		body = errorStyle.Render(resp.Err)
	case resp.IsLoading && resp.Content == "":
		body = m.spin.View() + mutedStyle.Render(" thinking...")
	default:
		body = renderMarkdown(resp.Content, width)
		if !resp.IsLoading {
			body += "\n" + mutedStyle.Render(fmt.Sprintf("%d words", wordCount(resp.Content)))
		}
	}

	return cardStyle.Width(width).Render(title + "\n" + body)
}
