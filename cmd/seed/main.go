package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/42Prague/skillgenome/internal/seed"
)

// Default configuration constants.
const (
	defaultPeople    = 200
	defaultFirstYear = 2018
	defaultLastYear  = 2025
	defaultSeed      = 42
	defaultBatch     = 5000
	defaultTimeout   = 60 * time.Second
	defaultRunBudget = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		people    = flag.Int("people", defaultPeople, "Number of synthetic employees")
		firstYear = flag.Int("first-year", defaultFirstYear, "First year of generated history")
		lastYear  = flag.Int("last-year", defaultLastYear, "Last year of generated history")
		prngSeed  = flag.Int64("seed", defaultSeed, "PRNG seed; a fixed seed reproduces the corpus")
		batch     = flag.Int("batch", defaultBatch, "Events per reload request")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunBudget)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:   *baseURL,
		People:    *people,
		FirstYear: *firstYear,
		LastYear:  *lastYear,
		Seed:      *prngSeed,
		BatchSize: *batch,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
