// Package orchestrator implements the share-acceptance and
// reconstruction engine: verifying and persisting submitted shares,
// detecting when a layer's threshold is reached, and running the
// detached reconstruction task that drives a layer from Idle through
// Decrypting to Decrypted.
package orchestrator
