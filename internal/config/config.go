// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxBatch caps the number of events accepted in a single reload request.
	MaxBatch int `koanf:"max_batch"`

	// DedupeSize bounds the event-ID deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxCorpusEvents bounds the in-memory event store.
	MaxCorpusEvents int `koanf:"max_corpus_events"`

	// RebuildTimeoutMS bounds a full snapshot rebuild.
	RebuildTimeoutMS int `koanf:"rebuild_timeout_ms"`

	// ForecastYears sets how many years ahead trend forecasts project.
	ForecastYears int `koanf:"forecast_years"`

	// ClusterEps is the density-clustering neighborhood radius.
	ClusterEps float64 `koanf:"cluster_eps"`

	// ClusterMinPoints is the density-clustering core-point threshold.
	ClusterMinPoints int `koanf:"cluster_min_points"`

	// ClusterTarget sets the hierarchical strategy's target cluster count.
	ClusterTarget int `koanf:"cluster_target"`

	// Trend band edges, in percent growth per year.
	TrendExplosive float64 `koanf:"trend_explosive"`
	TrendGrowing   float64 `koanf:"trend_growing"`
	TrendDeclining float64 `koanf:"trend_declining"`
	TrendDying     float64 `koanf:"trend_dying"`

	// Mutation-risk blend weights; must sum to 1.
	RiskAlpha float64 `koanf:"risk_alpha"`
	RiskBeta  float64 `koanf:"risk_beta"`
	RiskGamma float64 `koanf:"risk_gamma"`

	// RiskThreshold marks a skill at-risk for mentorship matching.
	RiskThreshold float64 `koanf:"risk_threshold"`

	// SimilarTopK caps similar-skill and mentorship candidate lists.
	SimilarTopK int `koanf:"similar_top_k"`

	// TrainingCostPerHead is the per-employee training cost for ROI runs.
	TrainingCostPerHead float64 `koanf:"training_cost_per_head"`

	// RedundancyThreshold is the max holder count that triggers an alert.
	RedundancyThreshold int `koanf:"redundancy_threshold"`

	// CriticalityCutoff separates Critical from Warning redundancy alerts.
	CriticalityCutoff float64 `koanf:"criticality_cutoff"`

	// TaxonomyShiftPct marks a popularity change as a major shift.
	TaxonomyShiftPct float64 `koanf:"taxonomy_shift_pct"`
}

// New creates a Config populated with service defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxBatch:            100_000,
		DedupeSize:          500_000,
		MaxCorpusEvents:     5_000_000,
		RebuildTimeoutMS:    30_000,
		ForecastYears:       2,
		ClusterEps:          0.35,
		ClusterMinPoints:    2,
		ClusterTarget:       4,
		TrendExplosive:      20,
		TrendGrowing:        5,
		TrendDeclining:      -5,
		TrendDying:          -20,
		RiskAlpha:           0.4,
		RiskBeta:            0.3,
		RiskGamma:           0.3,
		RiskThreshold:       0.6,
		SimilarTopK:         5,
		TrainingCostPerHead: 15_000,
		RedundancyThreshold: 2,
		CriticalityCutoff:   0.5,
		TaxonomyShiftPct:    50,
	}
}
