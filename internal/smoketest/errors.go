package smoketest

import "errors"

// Sentinel kinds for smoke test failures.
var (
	ErrBadConfig     = errors.New("invalid smoke test config")
	ErrUnhealthy     = errors.New("service unhealthy")
	ErrBadExposition = errors.New("invalid metrics exposition")
	ErrOutOfBounds   = errors.New("prediction out of bounds")
	ErrIncomplete    = errors.New("smoke test incomplete")
)
