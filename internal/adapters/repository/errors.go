package repository

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrCorpusFull = errors.New("event corpus full")
)
