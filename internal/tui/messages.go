package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reaxo/reaxo/internal/identity"
	"github.com/reaxo/reaxo/internal/orchestrator"
)

// SnapshotMsg carries a fresh conversation snapshot from the orchestrator.
type SnapshotMsg struct {
	Snapshot orchestrator.Snapshot
}

// TurnSettledMsg fires once every participant of the in-flight turn reached
// a terminal state.
type TurnSettledMsg struct{}

// AuthResultMsg is the outcome of a sign-in, sign-up or session restore.
type AuthResultMsg struct {
	User  *identity.User
	Token string
	Err   error
}

// ResetSentMsg is the outcome of a password reset request.
type ResetSentMsg struct {
	Email string
	Err   error
}

// ProfileSavedMsg is the outcome of a profile save, avatar upload included.
type ProfileSavedMsg struct {
	User *identity.User
	Err  error
}

// listenUpdates re-arms the snapshot pump. Each delivered snapshot schedules
// the next read, so the channel is always drained from the Bubble Tea loop.
func listenUpdates(ch <-chan orchestrator.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: <-ch}
	}
}

// awaitSettled converts the orchestrator's settle channel into a message.
func awaitSettled(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return TurnSettledMsg{}
	}
}
