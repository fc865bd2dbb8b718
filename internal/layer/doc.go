// Package layer implements the durable, filesystem-backed metadata record
// for a single protected artifact: its identity, state machine, command
// pipeline, and optional Feldman verifier. Documents are serialized as
// human-readable YAML with the suffix ".layer.yml" and written with a
// write-temp-then-rename discipline so concurrent readers never observe a
// partially written file.
package layer
