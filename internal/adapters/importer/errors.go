package importer

import "errors"

// Sentinel errors for import. ErrParse marks a whole-document failure; single
// bad rows never produce an error.
var (
	ErrParse             = errors.New("parse failed")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
