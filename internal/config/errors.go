package config

import (
	"errors"
)

// Sentinel error kinds for this package, matchable with errors.Is.
// ErrInvalidConfig covers validation failures (bad thresholds, empty
// addr); ErrLoadConfig covers provider failures.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
