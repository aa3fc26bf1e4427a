// Package service provides the core analytics service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	repository "github.com/42Prague/skillgenome/internal/adapters/repository"
	"github.com/42Prague/skillgenome/internal/domain/cluster"
	"github.com/42Prague/skillgenome/internal/domain/dedupe"
	"github.com/42Prague/skillgenome/internal/domain/insight"
	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/internal/domain/trend"
	"github.com/42Prague/skillgenome/internal/domain/types"
	"github.com/42Prague/skillgenome/pkg/logger"
	"github.com/42Prague/skillgenome/pkg/metrics"
)

// Default service configuration.
const (
	defaultMaxBatch       = 100_000
	defaultDedupeSize     = 500_000
	defaultRebuildTimeout = 30 * time.Second
)

// Service owns the event corpus and the published analytics snapshot.
// Reads are lock-free against the current snapshot; reloads rebuild a new
// snapshot off to the side and swap it in atomically.
type Service struct {
	// Core components
	store   repository.Store
	deduper dedupe.Deduper

	// Engines, fixed at construction
	analyzer  *trend.Analyzer
	clusterer *cluster.Engine
	insights  *insight.Engine

	// Published state
	snapshot atomic.Pointer[Snapshot]

	// Single-slot reload gate. Concurrent reloads are rejected, not queued.
	reloading atomic.Bool

	// Configuration
	maxBatch       int
	dedupeSize     int
	maxEvents      int
	rebuildTimeout time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxBatch caps the number of events accepted per reload request.
func WithMaxBatch(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// WithMaxEvents bounds the in-memory event store.
func WithMaxEvents(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxEvents = n
		}
	}
}

// WithRebuildTimeout bounds a full snapshot rebuild.
func WithRebuildTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.rebuildTimeout = d
		}
	}
}

// WithTrendAnalyzer sets a custom trend analyzer.
func WithTrendAnalyzer(a *trend.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithClusterEngine sets a custom cluster engine.
func WithClusterEngine(e *cluster.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.clusterer = e
		}
	}
}

// WithInsightEngine sets a custom strategic insight engine.
func WithInsightEngine(e *insight.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.insights = e
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		analyzer:       trend.NewAnalyzer(),
		clusterer:      cluster.New(),
		insights:       insight.New(),
		maxBatch:       defaultMaxBatch,
		dedupeSize:     defaultDedupeSize,
		rebuildTimeout: defaultRebuildTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store and publishes an empty snapshot so reads
// succeed before the first reload.
func (s *Service) Start(ctx context.Context) error {
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting skill genome service...")

	storeOpts := []repository.Option{}
	if s.maxEvents > 0 {
		storeOpts = append(storeOpts, repository.WithMaxEvents(s.maxEvents))
	}
	s.store = repository.NewMemStore(storeOpts...)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)

	empty, err := s.buildSnapshot(ctx, nil)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	s.snapshot.Store(empty)

	s.logger.Info(ctx, "skill genome service started",
		logger.Int("maxBatch", s.maxBatch),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop releases the service. The published snapshot stays readable until
// the process exits.
func (s *Service) Stop() {
	if s.logger != nil {
		s.logger.Info(context.Background(), "skill genome service stopped")
	}
}

// ReloadStats summarizes one reload request.
type ReloadStats struct {
	Accepted   int           `json:"accepted"`
	Duplicates int           `json:"duplicates"`
	Total      int           `json:"total_events"`
	Skills     int           `json:"skills"`
	Employees  int           `json:"employees"`
	RebuildDur time.Duration `json:"-"`
}

// Reload ingests a batch of events and rebuilds the analytics snapshot from
// the full accumulated corpus. Only one reload runs at a time; a concurrent
// call fails fast with ErrBusy. On any failure the previous snapshot stays
// published and the batch is rolled back from the dedupe cache.
func (s *Service) Reload(ctx context.Context, events []model.SkillEvent) (ReloadStats, error) {
	if len(events) > s.maxBatch {
		metrics.RecordEventsRejected(len(events))
		return ReloadStats{}, fmt.Errorf("%w: batch of %d exceeds limit %d", ErrBatchTooLarge, len(events), s.maxBatch)
	}
	if err := validateBatch(events); err != nil {
		metrics.RecordEventsRejected(len(events))
		return ReloadStats{}, err
	}

	if !s.reloading.CompareAndSwap(false, true) {
		metrics.RecordRebuildBusy()
		return ReloadStats{}, ErrBusy
	}
	defer s.reloading.Store(false)

	fresh := make([]model.SkillEvent, 0, len(events))
	recorded := make([]string, 0, len(events))
	duplicates := 0
	for _, e := range events {
		if s.deduper.SeenAndRecord(ctx, e.EventID) {
			duplicates++
			continue
		}
		fresh = append(fresh, e)
		recorded = append(recorded, e.EventID)
	}
	metrics.RecordEventsDuplicate(duplicates)

	rollback := func() {
		for _, id := range recorded {
			s.deduper.Unrecord(ctx, id)
		}
	}

	if _, err := s.store.Append(ctx, fresh); err != nil {
		rollback()
		metrics.RecordRebuildFailure()
		return ReloadStats{}, err
	}
	metrics.RecordEventsIngested(len(fresh))

	buildCtx, cancel := context.WithTimeout(ctx, s.rebuildTimeout)
	defer cancel()

	start := time.Now()
	snap, err := s.buildSnapshot(buildCtx, s.store.Events(ctx))
	if err != nil {
		// The events are already in the append-only store and stay recorded
		// in the dedupe cache; the next successful reload folds them in.
		metrics.RecordRebuildFailure()
		s.logger.Error(ctx, "snapshot rebuild failed", logger.Error(err))
		return ReloadStats{}, fmt.Errorf("%w: %w", ErrRebuildFailed, err)
	}
	elapsed := time.Since(start)

	s.snapshot.Store(snap)
	metrics.RecordRebuildDuration(float64(elapsed.Milliseconds()))
	metrics.UpdateSnapshot(len(snap.Corpus.Skills), len(snap.Corpus.Employees))

	s.logger.Info(ctx, "snapshot rebuilt",
		logger.Int("accepted", len(fresh)),
		logger.Int("duplicates", duplicates),
		logger.Int("totalEvents", snap.Events),
		logger.Int("skills", len(snap.Corpus.Skills)),
		logger.Duration("took", elapsed),
	)

	return ReloadStats{
		Accepted:   len(fresh),
		Duplicates: duplicates,
		Total:      snap.Events,
		Skills:     len(snap.Corpus.Skills),
		Employees:  len(snap.Corpus.Employees),
		RebuildDur: elapsed,
	}, nil
}

func validateBatch(events []model.SkillEvent) error {
	for i, e := range events {
		switch {
		case e.EventID == "":
			return fmt.Errorf("%w: event %d missing event id", ErrInvalidEvent, i)
		case e.PersonID == "":
			return fmt.Errorf("%w: event %d missing person id", ErrInvalidEvent, i)
		case model.Normalize(e.SkillName) == "":
			return fmt.Errorf("%w: event %d missing skill name", ErrInvalidEvent, i)
		case e.Date.IsZero():
			return fmt.Errorf("%w: event %d missing date", ErrInvalidEvent, i)
		case !e.Type.Valid():
			return fmt.Errorf("%w: event %d has unknown type %q", ErrInvalidEvent, i, e.Type)
		}
	}
	return nil
}

// current returns the published snapshot. Never nil after Start.
func (s *Service) current() (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotStarted
	}
	return snap, nil
}

// Genome returns the clustered skill map for the given method name.
// An empty method selects the density strategy.
func (s *Service) Genome(ctx context.Context, method string) (types.Genome, error) {
	snap, err := s.current()
	if err != nil {
		return types.Genome{}, err
	}
	m, err := cluster.ParseMethod(method)
	if err != nil {
		return types.Genome{}, err
	}
	return snap.Genomes[m], nil
}

// Evolution returns the temporal view of the skill landscape.
func (s *Service) Evolution(ctx context.Context) (types.Evolution, error) {
	snap, err := s.current()
	if err != nil {
		return types.Evolution{}, err
	}
	return snap.Evolution, nil
}

// Insights returns the strategic bundle.
func (s *Service) Insights(ctx context.Context) (types.Insights, error) {
	snap, err := s.current()
	if err != nil {
		return types.Insights{}, err
	}
	return snap.Insights, nil
}

// Network returns the relationship-graph analysis.
func (s *Service) Network(ctx context.Context) (types.Network, error) {
	snap, err := s.current()
	if err != nil {
		return types.Network{}, err
	}
	return snap.Network, nil
}

// Skill returns the per-skill drill-down. The lookup key is the canonical
// form of name.
func (s *Service) Skill(ctx context.Context, name string) (types.SkillDetail, error) {
	snap, err := s.current()
	if err != nil {
		return types.SkillDetail{}, err
	}

	canonical := model.Normalize(name)
	sk, ok := snap.Corpus.Skills[canonical]
	if !ok {
		return types.SkillDetail{}, fmt.Errorf("%w: %q", ErrSkillNotFound, canonical)
	}

	a := snap.Trends[canonical]
	detail := types.SkillDetail{
		Name:          canonical,
		Category:      sk.Category,
		GrowthRate:    a.GrowthRate,
		Trend:         a.Trend,
		Forecast:      forecastPoints(a.Forecast),
		Confidence:    a.Confidence,
		SimilarSkills: insight.SimilarSkills(snap.Corpus, canonical, topRanked),
	}
	for _, r := range snap.Insights.MutationRisks {
		if r.Skill == canonical {
			detail.MutationRisk = r.Risk
			break
		}
	}
	return detail, nil
}

// SimulateROI runs a reskilling what-if against the published snapshot.
func (s *Service) SimulateROI(ctx context.Context, fromSkill, toSkill string, employeeCount int) (types.ROISimulation, error) {
	snap, err := s.current()
	if err != nil {
		return types.ROISimulation{}, err
	}
	return s.insights.SimulateROI(snap.Corpus, snap.Trends, fromSkill, toSkill, employeeCount)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"maxBatch":   s.maxBatch,
		"dedupeSize": s.dedupeSize,
		"reloading":  s.reloading.Load(),
	}

	if snap := s.snapshot.Load(); snap != nil {
		stats["totalEvents"] = snap.Events
		stats["skills"] = len(snap.Corpus.Skills)
		stats["employees"] = len(snap.Corpus.Employees)
		stats["builtAt"] = snap.BuiltAt
	}
	if s.store != nil {
		stats["storedEvents"] = s.store.Count(context.Background())
	}

	return stats
}
