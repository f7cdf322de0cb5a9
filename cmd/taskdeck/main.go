package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/celine/taskdeck/internal/config"
	"github.com/celine/taskdeck/internal/store"
	"github.com/celine/taskdeck/internal/tui"
)

var (
	// CLI flags
	loginFlag  string
	noSeedFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Terminal UI for project and task tracking",
		Long: `taskdeck is a terminal project/task tracker with a kanban board.

All data lives in memory and is seeded from a demo dataset. Any seeded
email logs in with any password:

  Admin:  alice@company.com
  Member: bob@company.com

Configuration via environment: TASKDECK_SEED, TASKDECK_LOGIN.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&loginFlag, "login", "", "Email to log in as at startup. Overrides TASKDECK_LOGIN; use \"none\" to start at the login screen.")
	rootCmd.Flags().BoolVar(&noSeedFlag, "no-seed", false, "Start with empty collections instead of the demo dataset.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if loginFlag != "" {
		cfg.Login = loginFlag
		if loginFlag == "none" {
			cfg.Login = ""
		}
	}
	if noSeedFlag {
		cfg.Seed = false
		if loginFlag == "" {
			// Nobody to log in as in an empty store.
			cfg.Login = ""
		}
	}

	// The store is built once here and injected everywhere; no globals.
	s := store.New()
	if cfg.Seed {
		s.Seed(store.DemoData())
	}
	if cfg.Login != "" && !s.Login(cfg.Login, "") {
		return fmt.Errorf("auto-login failed: no account with email %q", cfg.Login)
	}

	app := tui.NewAppModel(s)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}
