package db

import "time"

// SnapshotRecord is one row of resume_snapshots
type SnapshotRecord struct {
	StorageKey string    `json:"storage_key"`
	Version    int       `json:"version"`
	Payload    []byte    `json:"payload"`
	SavedAt    time.Time `json:"saved_at"`
}
