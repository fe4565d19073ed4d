// Package store holds the single live resume document and applies named
// actions to it through a pure reducer.
package store

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// State is an immutable snapshot of everything the store owns. Reducers
// return a new State and never modify the one they were given.
type State struct {
	Resume       types.ResumeDocument        `json:"resume"`
	Formatting   types.FormattingPreferences `json:"formatting"`
	SectionOrder []types.SectionKey          `json:"sectionOrder"`
	IsDirty      bool                        `json:"isDirty"`
}

// DefaultState returns the state used on first load and after reset.
func DefaultState() State {
	return State{
		Resume:       types.NewResumeDocument(),
		Formatting:   types.DefaultFormatting(),
		SectionOrder: types.DefaultSectionOrder(),
	}
}

func (s State) clone() State {
	out := s
	out.Resume = s.Resume.Clone()
	out.SectionOrder = append([]types.SectionKey{}, s.SectionOrder...)
	return out
}

// Sections names used in errors and logs.
const (
	sectionEducation    = "education"
	sectionExperience   = "experience"
	sectionProjects     = "projects"
	sectionAchievements = "achievements"
)

func updateAt[T any](seq []T, i int, section string, f func(T) T) ([]T, error) {
	if i < 0 || i >= len(seq) {
		return nil, &IndexError{Section: section, Index: i, Len: len(seq)}
	}
	out := append([]T{}, seq...)
	out[i] = f(out[i])
	return out, nil
}

func removeAt[T any](seq []T, i int, section string) ([]T, error) {
	if i < 0 || i >= len(seq) {
		return nil, &IndexError{Section: section, Index: i, Len: len(seq)}
	}
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...), nil
}

func indexOf[T any](seq []T, id string, idOf func(T) string) int {
	for i, v := range seq {
		if idOf(v) == id {
			return i
		}
	}
	return -1
}
