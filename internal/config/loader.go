package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GENOME_CONFIG is set
//  3. env (prefix GENOME_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GENOME_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GENOME_ADDR, GENOME_MAX_BATCH, ...
	// Map env keys like GENOME_MAX_BATCH -> max_batch (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GENOME_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "genome_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxBatch <= 0:
		return fmt.Errorf("%w: max_batch must be positive", ErrInvalidConfig)
	case c.ForecastYears < 1:
		return fmt.Errorf("%w: forecast_years must be at least 1", ErrInvalidConfig)
	case c.ClusterEps <= 0:
		return fmt.Errorf("%w: cluster_eps must be positive", ErrInvalidConfig)
	case !(c.TrendExplosive > c.TrendGrowing && c.TrendGrowing > c.TrendDeclining && c.TrendDeclining > c.TrendDying):
		return fmt.Errorf("%w: trend band edges must be strictly decreasing", ErrInvalidConfig)
	}

	const weightTolerance = 1e-9
	sum := c.RiskAlpha + c.RiskBeta + c.RiskGamma
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return fmt.Errorf("%w: risk weights must sum to 1, got %v", ErrInvalidConfig, sum)
	}
	return nil
}
