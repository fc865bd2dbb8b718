// Package dms implements the dead-man's-switch evaluator: it polls signed
// timestamp sources, ratchets a last-known-good timestamp forward, and
// fires per-action command pipelines once enough time has passed since
// that timestamp without being refreshed. One call to Evaluate performs a
// single sweep; the operator is expected to schedule it externally (e.g.
// via cron).
package dms
