package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reaxo/reaxo/internal/catalog"
	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/identity"
	"github.com/reaxo/reaxo/internal/orchestrator"
	"github.com/reaxo/reaxo/internal/tui"
)

func main() {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	enabled := cfg.EnabledModels
	if len(enabled) == 0 {
		enabled = catalog.DefaultEnabledIDs()
	}

	completer := orchestrator.NewHTTPCompleter(cfg.RelayURL, nil, 0)
	orch := orchestrator.New(completer, enabled)

	var identityClient *identity.Client
	var session *identity.SessionStore
	if cfg.IdentityURL != "" {
		identityClient = identity.NewClient(cfg.IdentityURL, cfg.IdentityKey, nil)
		session, err = identity.NewSessionStore("reaxo")
		if err != nil {
			fmt.Fprintf(os.Stderr, "session store unavailable: %v\n", err)
			session = nil
		}
	}

	program := tea.NewProgram(
		tui.New(orch, identityClient, session),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Persist the model selection so the next session starts where this
	// one left off.
	cfg.EnabledModels = orch.EnabledIDs()
	if err := config.SaveClientConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "could not save config: %v\n", err)
	}
}
