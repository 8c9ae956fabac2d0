// Command report prints statistics over the synced email store and exports
// the correspondence as CSV and plain text. It only reads the database; run
// the sync command first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hwetherall/innovera-email-analysis/config"
	"github.com/hwetherall/innovera-email-analysis/report"
	"github.com/hwetherall/innovera-email-analysis/store"
)

func main() {
	configPath := flag.String("config", "sync.json", "path to the JSON config file")
	csvPath := flag.String("csv", "correspondence.csv", "CSV output path (empty to skip)")
	txtPath := flag.String("txt", "correspondence.txt", "text output path (empty to skip)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	ctx := context.Background()
	stats, err := st.Aggregate(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to aggregate store")
	}
	emails, err := st.List(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to list emails")
	}

	if err := report.Render(os.Stdout, stats, emails); err != nil {
		logger.Fatal().Err(err).Msg("failed to render report")
	}

	if *csvPath != "" {
		if err := writeFile(*csvPath, func(f *os.File) error {
			return report.WriteCSV(f, emails)
		}); err != nil {
			logger.Fatal().Err(err).Str("path", *csvPath).Msg("failed to write CSV export")
		}
		fmt.Printf("\nWrote %s\n", *csvPath)
	}
	if *txtPath != "" {
		if err := writeFile(*txtPath, func(f *os.File) error {
			return report.WriteText(f, emails)
		}); err != nil {
			logger.Fatal().Err(err).Str("path", *txtPath).Msg("failed to write text export")
		}
		fmt.Printf("Wrote %s\n", *txtPath)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
