// Command view opens a terminal browser over the synced email store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwetherall/innovera-email-analysis/config"
	"github.com/hwetherall/innovera-email-analysis/store"
	"github.com/hwetherall/innovera-email-analysis/tui"
)

func main() {
	configPath := flag.String("config", "sync.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	emails, err := st.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list emails: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(tui.NewModel(emails), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running viewer: %v\n", err)
		os.Exit(1)
	}
}
