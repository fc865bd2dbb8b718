package orchestrator

import "errors"

var (
	// ErrInvalidShare is returned when a submitted share fails base64
	// decoding, parsing, or verification against the layer's verifier.
	ErrInvalidShare = errors.New("orchestrator: invalid share")

	// ErrStorageFailure is returned when the share store reports the
	// insert did not affect exactly one row.
	ErrStorageFailure = errors.New("orchestrator: failed to store share")
)
