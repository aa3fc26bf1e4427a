package cluster

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownMethod = errors.New("unknown clustering method")
)
