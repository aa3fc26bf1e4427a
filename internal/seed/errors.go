package seed

import "errors"

// Sentinel error kinds for this package.
var (
	ErrBusy       = errors.New("service busy")
	ErrPostFailed = errors.New("reload post failed")
)
