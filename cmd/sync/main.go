// Command sync pulls the correspondence between the configured personal
// address and counterpart from Gmail into the local database. Each run is a
// full refresh: the store is wiped before any message is written.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hwetherall/innovera-email-analysis/config"
	"github.com/hwetherall/innovera-email-analysis/gmail"
	"github.com/hwetherall/innovera-email-analysis/store"
	"github.com/hwetherall/innovera-email-analysis/sync"
)

func main() {
	configPath := flag.String("config", "sync.json", "path to the JSON config file")
	check := flag.Bool("check", false, "verify Gmail connectivity and exit without syncing")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := gmail.NewClient(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Gmail client; ensure credentials.json is present and valid")
	}

	if *check {
		address, total, err := client.Verify(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("connection check failed")
		}
		fmt.Printf("Connected to Gmail as %s (%d messages in mailbox)\n", address, total)
		return
	}

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	spec := sync.NewSpec(cfg.PersonalAddress, cfg.Counterpart, cfg.Mode == config.ModeDomain)
	engine := sync.NewEngine(client, st, spec, logger)

	logger.Info().
		Str("personal", cfg.PersonalAddress).
		Str("counterpart", cfg.Counterpart).
		Str("mode", string(cfg.Mode)).
		Msg("starting email sync")

	summary, err := engine.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("sync failed")
	}

	printSummary(summary)
}

func printSummary(s *sync.Summary) {
	if s.Found == 0 {
		fmt.Println("No messages found for the configured addresses.")
		return
	}

	fmt.Printf("\nSync completed! Processed %d of %d messages (%d skipped).\n",
		s.Processed, s.Found, s.Skipped)

	fmt.Println("\nEmail Statistics:")
	fmt.Printf("Total emails synced: %d\n", s.Stats.Total)
	fmt.Printf("Outbound: %d\n", s.Stats.Outbound)
	fmt.Printf("Inbound: %d\n", s.Stats.Inbound)
	if s.Stats.Total > 0 {
		fmt.Printf("Date range: %s to %s\n",
			s.Stats.Earliest.Format("2006-01-02"), s.Stats.Latest.Format("2006-01-02"))
	}

	if len(s.Counterparts) > 0 {
		fmt.Println("\nCounterpart addresses:")
		for _, c := range s.Counterparts {
			fmt.Printf("- %s\n", c)
		}
	}
	if len(s.Stats.PerCounterpart) > 0 {
		fmt.Println("\nEmails per counterpart:")
		for _, cc := range s.Stats.PerCounterpart {
			fmt.Printf("- %s: %d emails\n", cc.Counterpart, cc.Count)
		}
	}
}
