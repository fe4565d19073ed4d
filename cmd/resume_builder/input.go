package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/snapshot"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// loadState reads either a saved snapshot (recognized by its "version"
// field) or a bare resume document. Bare documents get default formatting
// and section order.
func loadState(path string) (store.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.State{}, fmt.Errorf("input file not found: %s", path)
		}
		return store.State{}, fmt.Errorf("failed to read input file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return store.State{}, fmt.Errorf("input file is not valid JSON: %s", path)
	}

	if gjson.GetBytes(data, "version").Exists() {
		snap, err := snapshot.Decode(data)
		if err != nil {
			return store.State{}, err
		}
		return snap.State(), nil
	}

	if err := schemas.ValidateResume(data); err != nil {
		return store.State{}, fmt.Errorf("invalid resume document: %w", err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return store.State{}, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	st := store.DefaultState()
	st.Resume = doc.Normalize()
	return st, nil
}
