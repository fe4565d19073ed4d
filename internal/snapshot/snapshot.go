// Package snapshot persists the store's state as a versioned JSON document
// and restores it on start-up.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultKey is the storage key the snapshot is written under.
const DefaultKey = "resume-storage"

// Version is the current snapshot format version.
const Version = 1

// Snapshot is the persisted form of the store's state.
type Snapshot struct {
	Version      int                         `json:"version"`
	Resume       types.ResumeDocument        `json:"resume"`
	SectionOrder []types.SectionKey          `json:"sectionOrder"`
	Formatting   types.FormattingPreferences `json:"formatting"`
	LastSaved    time.Time                   `json:"lastSaved"`
}

// VersionError is returned when a snapshot was written by a newer or
// unknown format version.
type VersionError struct {
	Got int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported snapshot version %d (want %d)", e.Got, Version)
}

// FromState captures a store state.
func FromState(s store.State, savedAt time.Time) Snapshot {
	return Snapshot{
		Version:      Version,
		Resume:       s.Resume.Clone(),
		SectionOrder: append([]types.SectionKey{}, s.SectionOrder...),
		Formatting:   s.Formatting,
		LastSaved:    savedAt.UTC(),
	}
}

// State converts a snapshot back into a clean store state.
func (s Snapshot) State() store.State {
	return store.State{
		Resume:       s.Resume.Normalize(),
		Formatting:   s.Formatting,
		SectionOrder: types.NormalizeSectionOrder(s.SectionOrder),
	}
}

// Encode serializes a snapshot.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and checks its version.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if s.Version != Version {
		return Snapshot{}, &VersionError{Got: s.Version}
	}
	return s, nil
}
