// Package pipeline runs an ordered list of subprocess commands, optionally
// piping a secret or fixed string to each command's stdin. It generalizes
// the decrypt-layer command loop (internal/orchestrator) and the
// dead-man's-switch action loop (internal/dms), which differ only in what
// feeds stdin.
package pipeline
