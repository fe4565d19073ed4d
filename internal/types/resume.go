// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/google/uuid"
)

// DefaultTemplateID is the template used when none (or an unknown one) is selected.
const DefaultTemplateID = "modern"

// ResumeDocument is the complete structured record of one resume.
// Optional fields are empty strings, never absent.
type ResumeDocument struct {
	TemplateID   string        `json:"templateId"`
	PersonalInfo PersonalInfo  `json:"personalInfo"`
	Education    []Education   `json:"education"`
	Experience   []Experience  `json:"experience"`
	Projects     []Project     `json:"projects"`
	Skills       Skills        `json:"skills"`
	Achievements []Achievement `json:"achievements"`
}

// PersonalInfo holds the header block of the resume.
// FullName and Email are treated as primary by the editor but are not required.
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Summary   string `json:"summary"`
}

// Education is one entry in the education section.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree" validate:"required"`
	Field          string `json:"field"`
	Institution    string `json:"institution" validate:"required"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa"`
}

// Experience is one entry in the experience section.
// Description is free text; each non-empty line renders as a bullet.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Project is one entry in the projects section.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
	Description  string `json:"description"`
}

// Achievement is one entry in the achievements section.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date"`
	Issuer      string `json:"issuer"`
	Description string `json:"description"`
}

// Skills holds three independent insertion-ordered string sets.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// SkillCategory names one of the three skill sets.
type SkillCategory string

// Skill categories
const (
	SkillsTechnical SkillCategory = "technical"
	SkillsSoft      SkillCategory = "soft"
	SkillsLanguages SkillCategory = "languages"
)

// SkillCategories lists the categories in display order.
var SkillCategories = []SkillCategory{SkillsTechnical, SkillsSoft, SkillsLanguages}

// ParseSkillCategory validates a category name.
func ParseSkillCategory(s string) (SkillCategory, bool) {
	switch SkillCategory(s) {
	case SkillsTechnical, SkillsSoft, SkillsLanguages:
		return SkillCategory(s), true
	}
	return "", false
}

// Get returns the sequence for a category. Unknown categories return nil.
func (s Skills) Get(c SkillCategory) []string {
	switch c {
	case SkillsTechnical:
		return s.Technical
	case SkillsSoft:
		return s.Soft
	case SkillsLanguages:
		return s.Languages
	}
	return nil
}

// With returns a copy of s with category c replaced by values.
func (s Skills) With(c SkillCategory, values []string) Skills {
	out := s.Clone()
	v := append([]string{}, values...)
	switch c {
	case SkillsTechnical:
		out.Technical = v
	case SkillsSoft:
		out.Soft = v
	case SkillsLanguages:
		out.Languages = v
	}
	return out
}

// IsEmpty reports whether all three categories are empty.
func (s Skills) IsEmpty() bool {
	return len(s.Technical) == 0 && len(s.Soft) == 0 && len(s.Languages) == 0
}

// Deduplicate drops repeated values in each category, keeping the first
// occurrence.
func (s Skills) Deduplicate() Skills {
	return Skills{
		Technical: uniqueStrings(s.Technical),
		Soft:      uniqueStrings(s.Soft),
		Languages: uniqueStrings(s.Languages),
	}
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Clone returns a deep copy.
func (s Skills) Clone() Skills {
	return Skills{
		Technical: append([]string{}, s.Technical...),
		Soft:      append([]string{}, s.Soft...),
		Languages: append([]string{}, s.Languages...),
	}
}

// NewResumeDocument returns the default empty document.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		TemplateID:   DefaultTemplateID,
		Education:    []Education{},
		Experience:   []Experience{},
		Projects:     []Project{},
		Skills:       Skills{Technical: []string{}, Soft: []string{}, Languages: []string{}},
		Achievements: []Achievement{},
	}
}

// Clone returns a deep copy of the document. Reducers rely on this so that
// previously published states are never mutated.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Education = append([]Education{}, d.Education...)
	out.Experience = append([]Experience{}, d.Experience...)
	out.Projects = append([]Project{}, d.Projects...)
	out.Achievements = append([]Achievement{}, d.Achievements...)
	out.Skills = d.Skills.Clone()
	return out
}

// Normalize fills absent sequences with empty ones, assigns ids to entries
// that lack one, collapses repeated skills and defaults an empty template id.
// Imported and restored documents pass through here before reaching the store.
func (d ResumeDocument) Normalize() ResumeDocument {
	out := d.Clone()
	if out.TemplateID == "" {
		out.TemplateID = DefaultTemplateID
	}
	out.Skills = out.Skills.Deduplicate()
	for i := range out.Education {
		if out.Education[i].ID == "" {
			out.Education[i].ID = NewEntryID()
		}
	}
	for i := range out.Experience {
		if out.Experience[i].ID == "" {
			out.Experience[i].ID = NewEntryID()
		}
	}
	for i := range out.Projects {
		if out.Projects[i].ID == "" {
			out.Projects[i].ID = NewEntryID()
		}
	}
	for i := range out.Achievements {
		if out.Achievements[i].ID == "" {
			out.Achievements[i].ID = NewEntryID()
		}
	}
	return out
}

// HasContent reports whether the document holds anything worth analysing.
func (d ResumeDocument) HasContent() bool {
	return d.PersonalInfo.FullName != "" ||
		len(d.Experience) > 0 ||
		len(d.Education) > 0 ||
		len(d.Projects) > 0
}

// NewEntryID generates a stable identifier for a section entry.
func NewEntryID() string {
	return uuid.New().String()
}
