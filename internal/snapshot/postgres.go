package snapshot

import (
	"context"

	"github.com/jonathan/resume-builder/internal/db"
)

// PostgresRepository stores snapshots in the resume_snapshots table.
type PostgresRepository struct {
	db *db.DB
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository wraps a connected database.
func NewPostgresRepository(database *db.DB) *PostgresRepository {
	return &PostgresRepository{db: database}
}

// Load reads the snapshot payload for key.
func (r *PostgresRepository) Load(ctx context.Context, key string) ([]byte, error) {
	rec, err := r.db.GetSnapshot(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return rec.Payload, nil
}

// Save upserts the snapshot payload for key.
func (r *PostgresRepository) Save(ctx context.Context, key string, data []byte) error {
	return r.db.SaveSnapshot(ctx, key, data)
}

// Delete removes the row for key.
func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	return r.db.DeleteSnapshot(ctx, key)
}
