package shares

import "context"

// Store is the share-collection bag the orchestrator consumes. It is
// intentionally narrow: the core never issues arbitrary SQL, only these
// three operations.
type Store interface {
	// InsertShare appends share for layerUUID and reports whether exactly
	// one row was inserted.
	InsertShare(ctx context.Context, layerUUID, shareB64 string) (bool, error)

	// CountShares returns how many rows are stored for layerUUID.
	CountShares(ctx context.Context, layerUUID string) (int64, error)

	// SelectShares returns every stored share string for layerUUID, in
	// insertion order. Duplicates are not filtered here; callers that
	// need distinct x-coordinates filter them themselves (the orchestrator
	// deduplicates by x-coordinate before combining).
	SelectShares(ctx context.Context, layerUUID string) ([]string, error)
}
