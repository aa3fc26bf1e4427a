package trend

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidBands   = errors.New("invalid trend bands")
	ErrNumericFailure = errors.New("numeric failure")
)
