package shares

// QueryInitialize creates the shares table if it does not already exist.
// There is deliberately no uniqueness constraint on (layer_uuid, share):
// the same share string may be submitted and stored more than once.
const QueryInitialize = `
CREATE TABLE IF NOT EXISTS shares (
	id         BIGSERIAL,
	layer_uuid TEXT NOT NULL,
	share      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shares_layer_uuid ON shares(layer_uuid);
`

// QueryInsertShare appends one share row.
const QueryInsertShare = `INSERT INTO shares (layer_uuid, share) VALUES ($1, $2)`

// QueryCountShares counts rows for a layer.
const QueryCountShares = `SELECT COUNT(*) FROM shares WHERE layer_uuid = $1`

// QuerySelectShares returns every share string stored for a layer, in
// insertion order.
const QuerySelectShares = `SELECT share FROM shares WHERE layer_uuid = $1 ORDER BY id`
