package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/42Prague/skillgenome/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MaxBatch, convey.ShouldEqual, 100_000)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 500_000)
				convey.So(cfg.ForecastYears, convey.ShouldEqual, 2)
				convey.So(cfg.ClusterEps, convey.ShouldEqual, 0.35)
				convey.So(cfg.RiskAlpha+cfg.RiskBeta+cfg.RiskGamma, convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GENOME_ADDR", ":8080")
			_ = os.Setenv("GENOME_MAX_BATCH", "5000")
			_ = os.Setenv("GENOME_DEDUPE_SIZE", "250000")
			_ = os.Setenv("GENOME_FORECAST_YEARS", "3")
			_ = os.Setenv("GENOME_CLUSTER_EPS", "0.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxBatch, convey.ShouldEqual, 5000)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 250000)
				convey.So(cfg.ForecastYears, convey.ShouldEqual, 3)
				convey.So(cfg.ClusterEps, convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
max_batch: 20000
risk_threshold: 0.7
training_cost_per_head: 12000
taxonomy_shift_pct: 40
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GENOME_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxBatch, convey.ShouldEqual, 20000)
				convey.So(cfg.RiskThreshold, convey.ShouldEqual, 0.7)
				convey.So(cfg.TrainingCostPerHead, convey.ShouldEqual, 12000.0)
				convey.So(cfg.TaxonomyShiftPct, convey.ShouldEqual, 40.0)
			})
		})

		convey.Convey("When env vars override a YAML file", func() {
			yamlContent := `
addr: ":9090"
max_batch: 20000
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GENOME_CONFIG", tmpFile)
			_ = os.Setenv("GENOME_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env takes precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxBatch, convey.ShouldEqual, 20000)
			})
		})

		convey.Convey("When the config is invalid", func() {
			convey.Convey("Then an empty addr is rejected", func() {
				_ = os.Setenv("GENOME_ADDR", "")
				defer clearConfigEnvVars()

				// Empty env value still unmarshals as empty string.
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})

			convey.Convey("Then inverted trend bands are rejected", func() {
				_ = os.Setenv("GENOME_TREND_EXPLOSIVE", "-30")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})

			convey.Convey("Then risk weights not summing to one are rejected", func() {
				_ = os.Setenv("GENOME_RISK_ALPHA", "0.9")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})

			convey.Convey("Then a missing config file is reported", func() {
				_ = os.Setenv("GENOME_CONFIG", "/nonexistent/path/config.yaml")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	vars := []string{
		"GENOME_CONFIG",
		"GENOME_ADDR",
		"GENOME_MAX_BATCH",
		"GENOME_DEDUPE_SIZE",
		"GENOME_FORECAST_YEARS",
		"GENOME_CLUSTER_EPS",
		"GENOME_TREND_EXPLOSIVE",
		"GENOME_RISK_ALPHA",
	}
	for _, v := range vars {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "genome-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name()
}
