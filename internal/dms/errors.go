package dms

import "errors"

// ErrNoValidTimestamp is returned by Evaluate when, after scanning every
// timestamp source, the config still has no LastValidTimestamp to evaluate
// actions against: none was stored beforehand and no source produced a
// verified one.
var ErrNoValidTimestamp = errors.New("dms: no valid timestamp source")
