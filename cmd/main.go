package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/42Prague/skillgenome/internal/adapters/http/api"
	"github.com/42Prague/skillgenome/internal/adapters/http/swagger"
	app "github.com/42Prague/skillgenome/internal/app"
	"github.com/42Prague/skillgenome/internal/config"
	"github.com/42Prague/skillgenome/internal/domain/cluster"
	"github.com/42Prague/skillgenome/internal/domain/insight"
	"github.com/42Prague/skillgenome/internal/domain/trend"
	"github.com/42Prague/skillgenome/pkg/logger"
	"github.com/42Prague/skillgenome/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 60 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Build the analytics engines from configuration.
	analyzer := trend.NewAnalyzer(
		trend.WithBands(trend.Bands{
			Explosive: cfg.TrendExplosive,
			Growing:   cfg.TrendGrowing,
			Declining: cfg.TrendDeclining,
			Dying:     cfg.TrendDying,
		}),
		trend.WithForecastYears(cfg.ForecastYears),
	)
	clusterer := cluster.New(
		cluster.WithEps(cfg.ClusterEps),
		cluster.WithMinPoints(cfg.ClusterMinPoints),
		cluster.WithTargetClusters(cfg.ClusterTarget),
	)
	insights := insight.New(
		insight.WithRiskWeights(cfg.RiskAlpha, cfg.RiskBeta, cfg.RiskGamma),
		insight.WithRiskThreshold(cfg.RiskThreshold),
		insight.WithSimilarTopK(cfg.SimilarTopK),
		insight.WithTrainingCostPerHead(cfg.TrainingCostPerHead),
		insight.WithRedundancyThreshold(cfg.RedundancyThreshold),
		insight.WithCriticalityCutoff(cfg.CriticalityCutoff),
		insight.WithTaxonomyShiftPct(cfg.TaxonomyShiftPct),
	)

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithMaxBatch(cfg.MaxBatch),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMaxEvents(cfg.MaxCorpusEvents),
		app.WithRebuildTimeout(time.Duration(cfg.RebuildTimeoutMS)*time.Millisecond),
		app.WithTrendAnalyzer(analyzer),
		app.WithClusterEngine(clusterer),
		app.WithInsightEngine(insights),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
