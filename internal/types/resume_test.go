package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeDocument_Defaults(t *testing.T) {
	doc := NewResumeDocument()

	assert.Equal(t, "modern", doc.TemplateID)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Achievements)
	assert.True(t, doc.Skills.IsEmpty())
	assert.False(t, doc.HasContent())
}

func TestResumeDocument_JSONFieldNames(t *testing.T) {
	doc := NewResumeDocument()
	doc.PersonalInfo.FullName = "Ada Lovelace"
	doc.PersonalInfo.LinkedIn = "linkedin.com/in/ada"
	doc.Education = append(doc.Education, Education{ID: "e1", Degree: "BSc", GraduationDate: "1835"})

	jsonBytes, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(jsonBytes)
	assert.Contains(t, s, `"templateId":"modern"`)
	assert.Contains(t, s, `"fullName":"Ada Lovelace"`)
	assert.Contains(t, s, `"linkedin":"linkedin.com/in/ada"`)
	assert.Contains(t, s, `"graduationDate":"1835"`)
	assert.Contains(t, s, `"skills":{"technical":[],"soft":[],"languages":[]}`)
}

func TestResumeDocument_CloneIsDeep(t *testing.T) {
	doc := NewResumeDocument()
	doc.Experience = append(doc.Experience, Experience{ID: "x1", Title: "Engineer"})
	doc.Skills.Technical = append(doc.Skills.Technical, "Go")

	cp := doc.Clone()
	cp.Experience[0].Title = "Manager"
	cp.Skills.Technical[0] = "Rust"

	assert.Equal(t, "Engineer", doc.Experience[0].Title)
	assert.Equal(t, "Go", doc.Skills.Technical[0])
}

func TestResumeDocument_Normalize(t *testing.T) {
	var doc ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(`{
		"personalInfo": {"fullName": "Grace"},
		"experience": [{"title": "Admiral", "company": "Navy"}],
		"projects": [{"id": "keep-me", "name": "COBOL"}]
	}`), &doc))

	out := doc.Normalize()

	assert.Equal(t, DefaultTemplateID, out.TemplateID)
	assert.NotNil(t, out.Education)
	assert.NotNil(t, out.Achievements)
	assert.NotNil(t, out.Skills.Soft)
	require.Len(t, out.Experience, 1)
	assert.NotEmpty(t, out.Experience[0].ID)
	assert.Equal(t, "keep-me", out.Projects[0].ID)
	// The input is untouched.
	assert.Empty(t, doc.Experience[0].ID)
}

func TestResumeDocument_NormalizeCollapsesRepeatedSkills(t *testing.T) {
	var doc ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(`{
		"education": [{"degree": "BSc", "institution": "MIT", "gpa": null}],
		"skills": {"technical": ["Go", "SQL", "Go"], "soft": null, "languages": ["English", "English"]}
	}`), &doc))

	out := doc.Normalize()

	assert.Equal(t, []string{"Go", "SQL"}, out.Skills.Technical)
	assert.Equal(t, []string{}, out.Skills.Soft)
	assert.Equal(t, []string{"English"}, out.Skills.Languages)
	assert.Equal(t, "", out.Education[0].GPA)
}

func TestParseSkillCategory(t *testing.T) {
	for _, c := range SkillCategories {
		got, ok := ParseSkillCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := ParseSkillCategory("hobbies")
	assert.False(t, ok)
}

func TestSkills_With(t *testing.T) {
	s := Skills{Technical: []string{"Go"}}
	out := s.With(SkillsLanguages, []string{"English", "French"})

	assert.Equal(t, []string{"English", "French"}, out.Get(SkillsLanguages))
	assert.Equal(t, []string{"Go"}, out.Get(SkillsTechnical))
	assert.Empty(t, s.Languages)
}

func TestPatches_ApplyOnlySetFields(t *testing.T) {
	name := "Linus"
	empty := ""
	info := PersonalInfoPatch{FullName: &name, Email: &empty}.Apply(PersonalInfo{Email: "old@example.com", Phone: "555"})

	assert.Equal(t, "Linus", info.FullName)
	assert.Equal(t, "", info.Email)
	assert.Equal(t, "555", info.Phone)

	current := true
	exp := ExperiencePatch{Current: &current}.Apply(Experience{ID: "x", Title: "Dev"})
	assert.True(t, exp.Current)
	assert.Equal(t, "x", exp.ID)
	assert.Equal(t, "Dev", exp.Title)
}

func TestFormattingPatch_Apply(t *testing.T) {
	large := "large"
	got := FormattingPatch{FontSize: &large}.Apply(DefaultFormatting())

	assert.Equal(t, "large", got.FontSize)
	assert.Equal(t, LineSpacingNormal, got.LineSpacing)
	assert.Equal(t, MarginsNormal, got.Margins)
	assert.Equal(t, ColorSchemeBlue, got.ColorScheme)
}

func TestAnalysisResult_Unmarshal(t *testing.T) {
	input := `{
		"ats_score": 82,
		"ats_breakdown": {"keyword_match": 30, "experience_relevance": 20, "formatting_score": 18, "skill_coverage": 8, "language_quality": 6},
		"strengths": ["Clear impact"],
		"skill_gaps": [{"skill": "Kubernetes", "importance": "high", "recommendation": "Deploy a side project"}],
		"top_5_priorities": ["Quantify results"],
		"jd_match_percentage": 71.5
	}`

	var res AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(input), &res))
	assert.Equal(t, 82.0, res.ATSScore)
	require.NotNil(t, res.ATSBreakdown)
	assert.Equal(t, 30.0, res.ATSBreakdown.KeywordMatch)
	assert.Equal(t, "Kubernetes", res.SkillGaps[0].Skill)
	require.NotNil(t, res.JDMatchPercentage)
	assert.InDelta(t, 71.5, *res.JDMatchPercentage, 0.001)
}

func TestNormalizeSectionOrder(t *testing.T) {
	tests := []struct {
		name  string
		input []SectionKey
		want  []SectionKey
	}{
		{
			name:  "nil yields default",
			input: nil,
			want:  DefaultSectionOrder(),
		},
		{
			name:  "partial order keeps given keys first",
			input: []SectionKey{SectionSkills, SectionSummary},
			want:  []SectionKey{SectionSkills, SectionSummary, SectionExperience, SectionEducation, SectionProjects, SectionAchievements},
		},
		{
			name:  "unknown and duplicate keys dropped",
			input: []SectionKey{"hobbies", SectionProjects, SectionProjects},
			want:  []SectionKey{SectionProjects, SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionAchievements},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSectionOrder(tt.input))
		})
	}
}
