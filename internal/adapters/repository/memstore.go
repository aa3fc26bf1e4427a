package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultInitialCapacity = 4096
	defaultMaxEvents       = 5_000_000
)

// MemStore implements Store with an RWMutex-guarded append-only slice.
// Reads copy the backing slice so rebuilds never observe a concurrent append.
type MemStore struct {
	mu        sync.RWMutex
	events    []model.SkillEvent
	maxEvents int
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the backing slice.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.events = make([]model.SkillEvent, 0, n)
		}
	}
}

// WithMaxEvents bounds the corpus size; appends past the bound fail with
// ErrCorpusFull.
func WithMaxEvents(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.maxEvents = n
		}
	}
}

// NewMemStore creates an in-memory event store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		events:    make([]model.SkillEvent, 0, defaultInitialCapacity),
		maxEvents: defaultMaxEvents,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds a batch of events to the corpus.
func (s *MemStore) Append(ctx context.Context, events []model.SkillEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events)+len(events) > s.maxEvents {
		return 0, fmt.Errorf("%w: %d events stored, batch of %d exceeds limit %d",
			ErrCorpusFull, len(s.events), len(events), s.maxEvents)
	}
	s.events = append(s.events, events...)
	metrics.UpdateCorpusEvents(len(s.events))
	return len(events), nil
}

// Events returns a copy of the full corpus in ingestion order.
func (s *MemStore) Events(ctx context.Context) []model.SkillEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SkillEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Count returns the number of stored events.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
