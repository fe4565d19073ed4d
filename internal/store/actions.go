package store

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Action is a named state transition. Every mutation of the live document
// goes through one of the types below.
type Action interface {
	Name() string
	reduce(r Reducer, s State) (State, error)
}

// Reducer applies actions to states. It holds no state of its own.
type Reducer struct {
	// ResolveTemplate maps a requested template id to a registered one.
	// Nil keeps the id as given.
	ResolveTemplate func(id string) string
}

// Reduce returns the state that results from applying a to s. On error the
// returned state is the zero value and s is unchanged.
func (r Reducer) Reduce(s State, a Action) (State, error) {
	next, err := a.reduce(r, s.clone())
	if err != nil {
		return State{}, err
	}
	return next, nil
}

// UpdatePersonalInfo merges fields into personalInfo.
type UpdatePersonalInfo struct{ Patch types.PersonalInfoPatch }

func (UpdatePersonalInfo) Name() string { return "updatePersonalInfo" }

func (a UpdatePersonalInfo) reduce(_ Reducer, s State) (State, error) {
	s.Resume.PersonalInfo = a.Patch.Apply(s.Resume.PersonalInfo)
	s.IsDirty = true
	return s, nil
}

// AddEducation appends an education entry.
type AddEducation struct{ Entry types.Education }

func (AddEducation) Name() string { return "addEducation" }

func (a AddEducation) reduce(_ Reducer, s State) (State, error) {
	e := a.Entry
	if e.ID == "" {
		e.ID = types.NewEntryID()
	}
	s.Resume.Education = append(s.Resume.Education, e)
	s.IsDirty = true
	return s, nil
}

// UpdateEducation merges fields into the entry at Index.
type UpdateEducation struct {
	Index int
	Patch types.EducationPatch
}

func (UpdateEducation) Name() string { return "updateEducation" }

func (a UpdateEducation) reduce(_ Reducer, s State) (State, error) {
	seq, err := updateAt(s.Resume.Education, a.Index, sectionEducation, a.Patch.Apply)
	if err != nil {
		return State{}, err
	}
	s.Resume.Education = seq
	s.IsDirty = true
	return s, nil
}

// RemoveEducation deletes the entry at Index.
type RemoveEducation struct{ Index int }

func (RemoveEducation) Name() string { return "removeEducation" }

func (a RemoveEducation) reduce(_ Reducer, s State) (State, error) {
	seq, err := removeAt(s.Resume.Education, a.Index, sectionEducation)
	if err != nil {
		return State{}, err
	}
	s.Resume.Education = seq
	s.IsDirty = true
	return s, nil
}

// AddExperience appends an experience entry.
type AddExperience struct{ Entry types.Experience }

func (AddExperience) Name() string { return "addExperience" }

func (a AddExperience) reduce(_ Reducer, s State) (State, error) {
	e := a.Entry
	if e.ID == "" {
		e.ID = types.NewEntryID()
	}
	s.Resume.Experience = append(s.Resume.Experience, e)
	s.IsDirty = true
	return s, nil
}

// UpdateExperience merges fields into the entry at Index.
type UpdateExperience struct {
	Index int
	Patch types.ExperiencePatch
}

func (UpdateExperience) Name() string { return "updateExperience" }

func (a UpdateExperience) reduce(_ Reducer, s State) (State, error) {
	seq, err := updateAt(s.Resume.Experience, a.Index, sectionExperience, a.Patch.Apply)
	if err != nil {
		return State{}, err
	}
	s.Resume.Experience = seq
	s.IsDirty = true
	return s, nil
}

// RemoveExperience deletes the entry at Index.
type RemoveExperience struct{ Index int }

func (RemoveExperience) Name() string { return "removeExperience" }

func (a RemoveExperience) reduce(_ Reducer, s State) (State, error) {
	seq, err := removeAt(s.Resume.Experience, a.Index, sectionExperience)
	if err != nil {
		return State{}, err
	}
	s.Resume.Experience = seq
	s.IsDirty = true
	return s, nil
}

// AddProject appends a project entry.
type AddProject struct{ Entry types.Project }

func (AddProject) Name() string { return "addProject" }

func (a AddProject) reduce(_ Reducer, s State) (State, error) {
	p := a.Entry
	if p.ID == "" {
		p.ID = types.NewEntryID()
	}
	s.Resume.Projects = append(s.Resume.Projects, p)
	s.IsDirty = true
	return s, nil
}

// UpdateProject merges fields into the entry at Index.
type UpdateProject struct {
	Index int
	Patch types.ProjectPatch
}

func (UpdateProject) Name() string { return "updateProject" }

func (a UpdateProject) reduce(_ Reducer, s State) (State, error) {
	seq, err := updateAt(s.Resume.Projects, a.Index, sectionProjects, a.Patch.Apply)
	if err != nil {
		return State{}, err
	}
	s.Resume.Projects = seq
	s.IsDirty = true
	return s, nil
}

// RemoveProject deletes the entry at Index.
type RemoveProject struct{ Index int }

func (RemoveProject) Name() string { return "removeProject" }

func (a RemoveProject) reduce(_ Reducer, s State) (State, error) {
	seq, err := removeAt(s.Resume.Projects, a.Index, sectionProjects)
	if err != nil {
		return State{}, err
	}
	s.Resume.Projects = seq
	s.IsDirty = true
	return s, nil
}

// AddAchievement appends an achievement entry.
type AddAchievement struct{ Entry types.Achievement }

func (AddAchievement) Name() string { return "addAchievement" }

func (a AddAchievement) reduce(_ Reducer, s State) (State, error) {
	e := a.Entry
	if e.ID == "" {
		e.ID = types.NewEntryID()
	}
	s.Resume.Achievements = append(s.Resume.Achievements, e)
	s.IsDirty = true
	return s, nil
}

// UpdateAchievement merges fields into the entry at Index.
type UpdateAchievement struct {
	Index int
	Patch types.AchievementPatch
}

func (UpdateAchievement) Name() string { return "updateAchievement" }

func (a UpdateAchievement) reduce(_ Reducer, s State) (State, error) {
	seq, err := updateAt(s.Resume.Achievements, a.Index, sectionAchievements, a.Patch.Apply)
	if err != nil {
		return State{}, err
	}
	s.Resume.Achievements = seq
	s.IsDirty = true
	return s, nil
}

// RemoveAchievement deletes the entry at Index.
type RemoveAchievement struct{ Index int }

func (RemoveAchievement) Name() string { return "removeAchievement" }

func (a RemoveAchievement) reduce(_ Reducer, s State) (State, error) {
	seq, err := removeAt(s.Resume.Achievements, a.Index, sectionAchievements)
	if err != nil {
		return State{}, err
	}
	s.Resume.Achievements = seq
	s.IsDirty = true
	return s, nil
}

// UpdateSkills replaces one skill category wholesale.
type UpdateSkills struct {
	Category string
	Values   []string
}

func (UpdateSkills) Name() string { return "updateSkills" }

func (a UpdateSkills) reduce(_ Reducer, s State) (State, error) {
	c, ok := types.ParseSkillCategory(a.Category)
	if !ok {
		return State{}, &CategoryError{Category: a.Category}
	}
	values := a.Values
	if values == nil {
		values = []string{}
	}
	s.Resume.Skills = s.Resume.Skills.With(c, values)
	s.IsDirty = true
	return s, nil
}

// AddSkill appends a trimmed value to a category. Blank values and values
// already present leave the state untouched.
type AddSkill struct {
	Category string
	Value    string
}

func (AddSkill) Name() string { return "addSkill" }

func (a AddSkill) reduce(_ Reducer, s State) (State, error) {
	c, ok := types.ParseSkillCategory(a.Category)
	if !ok {
		return State{}, &CategoryError{Category: a.Category}
	}
	v := strings.TrimSpace(a.Value)
	current := s.Resume.Skills.Get(c)
	if v == "" || slices.Contains(current, v) {
		return s, nil
	}
	s.Resume.Skills = s.Resume.Skills.With(c, append(append([]string{}, current...), v))
	s.IsDirty = true
	return s, nil
}

// RemoveSkill drops every occurrence of Value from a category.
type RemoveSkill struct {
	Category string
	Value    string
}

func (RemoveSkill) Name() string { return "removeSkill" }

func (a RemoveSkill) reduce(_ Reducer, s State) (State, error) {
	c, ok := types.ParseSkillCategory(a.Category)
	if !ok {
		return State{}, &CategoryError{Category: a.Category}
	}
	kept := make([]string, 0, len(s.Resume.Skills.Get(c)))
	for _, v := range s.Resume.Skills.Get(c) {
		if v != a.Value {
			kept = append(kept, v)
		}
	}
	s.Resume.Skills = s.Resume.Skills.With(c, kept)
	s.IsDirty = true
	return s, nil
}

// SetTemplate selects a template. Unknown ids are resolved by the reducer's
// template resolver. The dirty flag is left alone.
type SetTemplate struct{ ID string }

func (SetTemplate) Name() string { return "setTemplate" }

func (a SetTemplate) reduce(r Reducer, s State) (State, error) {
	id := a.ID
	if r.ResolveTemplate != nil {
		id = r.ResolveTemplate(id)
	}
	if id == "" {
		id = types.DefaultTemplateID
	}
	s.Resume.TemplateID = id
	return s, nil
}

// UpdateFormatting merges formatting fields. The dirty flag is left alone.
type UpdateFormatting struct{ Patch types.FormattingPatch }

func (UpdateFormatting) Name() string { return "updateFormatting" }

func (a UpdateFormatting) reduce(_ Reducer, s State) (State, error) {
	s.Formatting = a.Patch.Apply(s.Formatting)
	return s, nil
}

// SetSectionOrder replaces the render order of sections.
type SetSectionOrder struct{ Order []types.SectionKey }

func (SetSectionOrder) Name() string { return "setSectionOrder" }

func (a SetSectionOrder) reduce(_ Reducer, s State) (State, error) {
	s.SectionOrder = types.NormalizeSectionOrder(a.Order)
	return s, nil
}

// LoadResume replaces the whole document and marks the state clean.
type LoadResume struct{ Document types.ResumeDocument }

func (LoadResume) Name() string { return "loadResume" }

func (a LoadResume) reduce(r Reducer, s State) (State, error) {
	doc := a.Document.Normalize()
	if r.ResolveTemplate != nil {
		doc.TemplateID = r.ResolveTemplate(doc.TemplateID)
	}
	s.Resume = doc
	s.IsDirty = false
	return s, nil
}

// MarkClean clears the dirty flag.
type MarkClean struct{}

func (MarkClean) Name() string { return "markClean" }

func (MarkClean) reduce(_ Reducer, s State) (State, error) {
	s.IsDirty = false
	return s, nil
}

// MarkDirty sets the dirty flag.
type MarkDirty struct{}

func (MarkDirty) Name() string { return "markDirty" }

func (MarkDirty) reduce(_ Reducer, s State) (State, error) {
	s.IsDirty = true
	return s, nil
}

// ResetResume restores the default empty document and marks the state
// clean. The selected template, formatting and section order survive.
type ResetResume struct{}

func (ResetResume) Name() string { return "resetResume" }

func (ResetResume) reduce(_ Reducer, s State) (State, error) {
	return resetDocument(s), nil
}

// ClearResume is an alias of ResetResume kept for callers that distinguish
// "start over" from "clear all fields".
type ClearResume struct{}

func (ClearResume) Name() string { return "clearResume" }

func (ClearResume) reduce(_ Reducer, s State) (State, error) {
	return resetDocument(s), nil
}

func resetDocument(s State) State {
	doc := types.NewResumeDocument()
	doc.TemplateID = s.Resume.TemplateID
	s.Resume = doc
	s.IsDirty = false
	return s
}
