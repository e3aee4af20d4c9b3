package normalize

import "errors"

// Sentinel errors for record rejection. Rejection is expected input
// filtering, not a failure: parsers drop rejected records silently.
var (
	ErrRejected     = errors.New("record rejected")
	ErrMissingID    = errors.New("missing id")
	ErrMissingBrand = errors.New("missing brand name")
)
