package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	storage_key TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	saved_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteRepository stores snapshots in a local SQLite file.
type SQLiteRepository struct {
	conn *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("snapshot: open sqlite: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("snapshot: ping sqlite: %w", err)
	}
	if _, err := conn.Exec(sqliteSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("snapshot: apply sqlite schema: %w", err)
	}
	return &SQLiteRepository{conn: conn}, nil
}

// Close closes the underlying connection.
func (r *SQLiteRepository) Close() error {
	return r.conn.Close()
}

// Load reads the payload stored under key.
func (r *SQLiteRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := r.conn.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE storage_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %s: %w", key, err)
	}
	return []byte(payload), nil
}

// Save upserts the payload under key.
func (r *SQLiteRepository) Save(ctx context.Context, key string, data []byte) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO snapshots (storage_key, payload, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(storage_key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("snapshot: save %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM snapshots WHERE storage_key = ?`, key); err != nil {
		return fmt.Errorf("snapshot: delete %s: %w", key, err)
	}
	return nil
}
