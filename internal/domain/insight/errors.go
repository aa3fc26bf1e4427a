package insight

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownSkill     = errors.New("unknown skill")
	ErrInvalidParameter = errors.New("invalid parameter")
)
