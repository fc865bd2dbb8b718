package vsss

import "errors"

// Sentinel errors for the VSSS primitive. Callers should use errors.Is to
// classify failures per the InvalidInput/InvalidShare/CryptoFailure
// taxonomy; higher layers (orchestrator, CLI) decide how to surface each.
var (
	// ErrInvalidSecret is returned when the secret is empty, longer than
	// 32 bytes, or does not encode a canonical scalar.
	ErrInvalidSecret = errors.New("vsss: invalid secret")

	// ErrInvalidThreshold is returned when T or N are out of [1,255] or
	// T > N.
	ErrInvalidThreshold = errors.New("vsss: invalid threshold/shares")

	// ErrMalformedShare is returned when a share cannot be parsed into an
	// (x, y) pair.
	ErrMalformedShare = errors.New("vsss: malformed share")

	// ErrInsufficientShares is returned by Combine when fewer than T
	// distinct-x shares are supplied.
	ErrInsufficientShares = errors.New("vsss: insufficient shares")

	// ErrDuplicateShares is returned by Combine when two shares carry the
	// same x-coordinate.
	ErrDuplicateShares = errors.New("vsss: duplicate shares")

	// ErrNotUTF8 is returned by scalar-to-secret conversion when the
	// recovered bytes, after NUL-truncation, are not valid UTF-8.
	ErrNotUTF8 = errors.New("vsss: recovered secret is not valid UTF-8")
)
