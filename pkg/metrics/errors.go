package metrics

import "errors"

// Metrics errors.
var (
	// ErrMetricsDisabled indicates metrics collection is disabled.
	ErrMetricsDisabled = errors.New("metrics collection is disabled")

	// ErrInvalidRegistry indicates an invalid Prometheus registry.
	ErrInvalidRegistry = errors.New("invalid prometheus registry")
)
