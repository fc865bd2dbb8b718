// Package log provides structured logging and audit-trail helpers used by
// perimetr-server and perimetr-dms. It wraps log/slog with a JSON handler and adds
// a small audit-entry type for recording share-acceptance and reconstruction
// lifecycle events.
package log
