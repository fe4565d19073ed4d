package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveSnapshot upserts the JSON payload stored under key. The version column
// is read from the payload's top-level "version" field.
func (db *DB) SaveSnapshot(ctx context.Context, key string, payload []byte) error {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(payload, &header); err != nil {
		return fmt.Errorf("failed to read snapshot version: %w", err)
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_snapshots (storage_key, version, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (storage_key) DO UPDATE SET version = $2, payload = $3, saved_at = NOW()`,
		key, header.Version, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// GetSnapshot retrieves the snapshot stored under key
func (db *DB) GetSnapshot(ctx context.Context, key string) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	err := db.pool.QueryRow(ctx,
		`SELECT storage_key, version, payload, saved_at FROM resume_snapshots WHERE storage_key = $1`,
		key,
	).Scan(&rec.StorageKey, &rec.Version, &rec.Payload, &rec.SavedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	return &rec, nil
}

// DeleteSnapshot removes the snapshot stored under key
func (db *DB) DeleteSnapshot(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resume_snapshots WHERE storage_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}
