package shares

import (
	"context"
	"database/sql"
	"fmt"
)

// DB is the subset of *sql.DB the Postgres-backed store needs, satisfied
// by database/sql via the pgx stdlib driver.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PostgresStore is the Postgres-backed implementation of Store.
type PostgresStore struct {
	db DB
}

// NewPostgresStore wraps an already-open database handle. Migrate should
// be called once at startup before serving requests.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the shares table if it does not exist.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.ExecContext(ctx, QueryInitialize); err != nil {
		return fmt.Errorf("shares: migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertShare(ctx context.Context, layerUUID, shareB64 string) (bool, error) {
	res, err := s.db.ExecContext(ctx, QueryInsertShare, layerUUID, shareB64)
	if err != nil {
		return false, fmt.Errorf("shares: insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("shares: insert rows affected: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) CountShares(ctx context.Context, layerUUID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, QueryCountShares, layerUUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("shares: count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) SelectShares(ctx context.Context, layerUUID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, QuerySelectShares, layerUUID)
	if err != nil {
		return nil, fmt.Errorf("shares: select: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var share string
		if err := rows.Scan(&share); err != nil {
			return nil, fmt.Errorf("shares: scan: %w", err)
		}
		out = append(out, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shares: rows: %w", err)
	}
	return out, nil
}
