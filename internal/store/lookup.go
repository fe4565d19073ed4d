package store

import "github.com/jonathan/resume-builder/internal/types"

// Entry ids are resolved against the live sequence at the moment of use, so
// callers addressing entries by id never act on a stale position.

// EducationIndex returns the current position of the education entry with id.
func (s State) EducationIndex(id string) (int, error) {
	i := indexOf(s.Resume.Education, id, func(e types.Education) string { return e.ID })
	if i < 0 {
		return -1, &NotFoundError{Section: sectionEducation, ID: id}
	}
	return i, nil
}

// ExperienceIndex returns the current position of the experience entry with id.
func (s State) ExperienceIndex(id string) (int, error) {
	i := indexOf(s.Resume.Experience, id, func(e types.Experience) string { return e.ID })
	if i < 0 {
		return -1, &NotFoundError{Section: sectionExperience, ID: id}
	}
	return i, nil
}

// ProjectIndex returns the current position of the project with id.
func (s State) ProjectIndex(id string) (int, error) {
	i := indexOf(s.Resume.Projects, id, func(p types.Project) string { return p.ID })
	if i < 0 {
		return -1, &NotFoundError{Section: sectionProjects, ID: id}
	}
	return i, nil
}

// AchievementIndex returns the current position of the achievement with id.
func (s State) AchievementIndex(id string) (int, error) {
	i := indexOf(s.Resume.Achievements, id, func(a types.Achievement) string { return a.ID })
	if i < 0 {
		return -1, &NotFoundError{Section: sectionAchievements, ID: id}
	}
	return i, nil
}

// ByID wraps an index-addressed action builder so that the id is resolved
// inside the dispatch critical section.
type ByID struct {
	Section string
	ID      string
	Build   func(index int) Action
}

// Name reports the wrapped action's name.
func (b ByID) Name() string {
	return b.Build(0).Name()
}

func (b ByID) reduce(r Reducer, s State) (State, error) {
	var (
		i   int
		err error
	)
	switch b.Section {
	case sectionEducation:
		i, err = s.EducationIndex(b.ID)
	case sectionExperience:
		i, err = s.ExperienceIndex(b.ID)
	case sectionProjects:
		i, err = s.ProjectIndex(b.ID)
	case sectionAchievements:
		i, err = s.AchievementIndex(b.ID)
	default:
		return State{}, &NotFoundError{Section: b.Section, ID: b.ID}
	}
	if err != nil {
		return State{}, err
	}
	return b.Build(i).reduce(r, s)
}

// Section names accepted by ByID.
const (
	SectionEducation    = sectionEducation
	SectionExperience   = sectionExperience
	SectionProjects     = sectionProjects
	SectionAchievements = sectionAchievements
)
