package selection

import "errors"

// Sentinel errors for selection changes.
var (
	ErrSelectionFull = errors.New("selection is full")
	ErrEmptyID       = errors.New("empty id")
)
