package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrEmptySelection = errors.New("nothing selected")
	ErrUnknownProfile = errors.New("unknown profile")
)
