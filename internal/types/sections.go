package types

// SectionKey identifies one renderable resume section.
type SectionKey string

// Section keys in default display order.
const (
	SectionSummary      SectionKey = "summary"
	SectionExperience   SectionKey = "experience"
	SectionEducation    SectionKey = "education"
	SectionProjects     SectionKey = "projects"
	SectionSkills       SectionKey = "skills"
	SectionAchievements SectionKey = "achievements"
)

// DefaultSectionOrder returns a fresh copy of the default section order.
func DefaultSectionOrder() []SectionKey {
	return []SectionKey{
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionProjects,
		SectionSkills,
		SectionAchievements,
	}
}

// NormalizeSectionOrder drops unknown and duplicate keys, then appends any
// missing keys in default order. The result is always a permutation of the
// default order.
func NormalizeSectionOrder(order []SectionKey) []SectionKey {
	known := make(map[SectionKey]bool)
	for _, k := range DefaultSectionOrder() {
		known[k] = true
	}

	out := make([]SectionKey, 0, len(known))
	seen := make(map[SectionKey]bool)
	for _, k := range order {
		if !known[k] || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range DefaultSectionOrder() {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}
