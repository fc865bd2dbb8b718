package layer

import "errors"

var (
	// ErrNotFound is returned when no layer file matching a UUID exists
	// under a scanned directory tree.
	ErrNotFound = errors.New("layer: not found")

	// ErrUnknownField is returned when a layer document contains a field
	// the schema does not recognize.
	ErrUnknownField = errors.New("layer: unknown field in document")
)
