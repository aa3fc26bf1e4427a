// Package repository defines the event corpus store interface and errors.
package repository

import (
	"context"

	"github.com/42Prague/skillgenome/internal/domain/model"
)

// Store provides append-only access to the full event corpus. Derived
// analytics are always rebuilt from the complete history; the store never
// mutates or compacts ingested events.
type Store interface {
	// Append adds a batch of events and returns how many were stored.
	Append(ctx context.Context, events []model.SkillEvent) (int, error)

	// Events returns a copy of the full corpus in ingestion order.
	Events(ctx context.Context) []model.SkillEvent

	// Count returns the number of stored events.
	Count(ctx context.Context) int
}
