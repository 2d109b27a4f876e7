// Package ledger records successfully loaded source files in Postgres so
// repeated runs over the same directory can skip files that already
// reached the warehouse. The ledger is optional: the pipeline runs without
// one and simply re-processes everything.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createStmt = `
CREATE TABLE IF NOT EXISTS ingest_history (
	id UUID PRIMARY KEY,
	file_name TEXT NOT NULL,
	table_id TEXT NOT NULL,
	partition_value TEXT NOT NULL,
	loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ingest_history_file_name_idx ON ingest_history (file_name);
`

// Ledger is a Postgres-backed record of completed loads.
type Ledger struct {
	pool *pgxpool.Pool
}

// Open connects to the ledger database and ensures its schema exists.
func Open(ctx context.Context, databaseURL string) (*Ledger, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to ledger database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging ledger database: %w", err)
	}
	if _, err := pool.Exec(ctx, createStmt); err != nil {
		pool.Close()
		return nil, fmt.Errorf("preparing ledger schema: %w", err)
	}
	return &Ledger{pool: pool}, nil
}

// AlreadyLoaded reports whether fileName was recorded by a previous run.
func (l *Ledger) AlreadyLoaded(ctx context.Context, fileName string) (bool, error) {
	var count int
	err := l.pool.QueryRow(ctx,
		`SELECT count(*) FROM ingest_history WHERE file_name = $1`, fileName,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking ingest history for %s: %w", fileName, err)
	}
	return count > 0, nil
}

// RecordLoad marks fileName as loaded. Called only after the warehouse load
// job reached a successful terminal state.
func (l *Ledger) RecordLoad(ctx context.Context, fileName, tableID, partitionValue string) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO ingest_history (id, file_name, table_id, partition_value) VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), fileName, tableID, partitionValue,
	)
	if err != nil {
		return fmt.Errorf("recording load of %s: %w", fileName, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (l *Ledger) Close() {
	l.pool.Close()
}
