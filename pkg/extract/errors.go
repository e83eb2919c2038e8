package extract

import "errors"

// Sentinel results for extraction misses. Callers treat these as
// non-fatal "not found" signals rather than failures.
var (
	ErrNoAmount = errors.New("no amount detected")
	ErrNoDate   = errors.New("no date detected")
)
