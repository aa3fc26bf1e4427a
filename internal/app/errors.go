package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrBusy signals that a reload is already in flight.
	ErrBusy = errors.New("reload already in progress")

	// ErrInvalidEvent marks a batch containing a malformed event.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrBatchTooLarge marks a batch exceeding the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")

	// ErrSkillNotFound marks a lookup for an unknown canonical skill.
	ErrSkillNotFound = errors.New("skill not found")

	// ErrRebuildFailed marks a failed snapshot rebuild; the previous
	// snapshot stays published.
	ErrRebuildFailed = errors.New("snapshot rebuild failed")

	// ErrNotStarted marks reads before the service was started.
	ErrNotStarted = errors.New("service not started")
)
