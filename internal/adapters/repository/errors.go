package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNotFound = errors.New("water not found")
)
