package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotRecordType(t *testing.T) {
	rec := SnapshotRecord{
		StorageKey: "resume-storage",
		Version:    1,
		Payload:    []byte(`{"version":1}`),
	}

	assert.Equal(t, "resume-storage", rec.StorageKey)
	assert.Equal(t, 1, rec.Version)
	assert.True(t, rec.SavedAt.IsZero())
}

func TestSaveSnapshot_RejectsNonJSONPayload(t *testing.T) {
	// The version is read before touching the pool, so a nil pool is fine here.
	db := &DB{}
	err := db.SaveSnapshot(context.Background(), "k", []byte("not json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read snapshot version")
}

func TestClose_NilPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
}
