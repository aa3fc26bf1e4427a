package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/42Prague/skillgenome/pkg/logger"
)

// Run generates the synthetic corpus and posts it to the service.
func Run(ctx context.Context, cfg *Config) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Named("seed")

	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "generating synthetic corpus",
		logger.Int("people", cfg.People),
		logger.Int("firstYear", cfg.FirstYear),
		logger.Int("lastYear", cfg.LastYear),
		logger.Any("seed", cfg.Seed),
	)
	events := Generate(cfg)
	stats.EventsGenerated = len(events)

	log.Info(ctx, "posting reload batches",
		logger.Int("events", len(events)),
		logger.Int("batchSize", cfg.BatchSize),
	)
	p := newPoster(cfg.BaseURL, cfg.Timeout)
	if err := p.postAll(ctx, cfg, events, stats); err != nil {
		return fmt.Errorf("seeding failed after %d batches: %w", stats.BatchesPosted, err)
	}

	stats.Duration = time.Since(stats.StartTime)
	printSummary(cfg, stats)
	return nil
}

func printSummary(cfg *Config, stats *Stats) {
	fmt.Fprintf(os.Stdout, `Seeding complete
  target:     %s
  generated:  %d events
  ingested:   %d
  duplicates: %d
  batches:    %d
  took:       %s
`,
		cfg.BaseURL,
		stats.EventsGenerated,
		stats.EventsIngested,
		stats.EventsDuplicate,
		stats.BatchesPosted,
		stats.Duration.Round(time.Millisecond),
	)
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Skill Genome Corpus Seeder
==========================

Generates a synthetic workforce event history and posts it to a running
service in reload batches.

Usage:
  go run cmd/seed/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -people int
        Number of synthetic employees (default 200)
  -first-year int
        First year of generated history (default 2018)
  -last-year int
        Last year of generated history (default 2025)
  -seed int
        PRNG seed; a fixed seed reproduces the corpus (default 42)
  -batch int
        Events per reload request (default 5000)
  -timeout duration
        HTTP request timeout (default 60s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed a local service with defaults
  go run cmd/seed/main.go

  # A larger workforce with reproducible output
  go run cmd/seed/main.go -people 1000 -seed 7

  # Target another instance
  go run cmd/seed/main.go -url http://localhost:8080
`)
}
