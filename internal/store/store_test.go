package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func strPtr(s string) *string { return &s }

func TestStore_AddAndRemoveEducation(t *testing.T) {
	s := New()

	added, err := s.AddEducation(types.Education{Degree: "B.Sc.", Institution: "X University", GraduationDate: "2024"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	st := s.State()
	require.Len(t, st.Resume.Education, 1)
	assert.Equal(t, "B.Sc.", st.Resume.Education[0].Degree)
	assert.Equal(t, "X University", st.Resume.Education[0].Institution)
	assert.Equal(t, "2024", st.Resume.Education[0].GraduationDate)
	assert.True(t, st.IsDirty)

	require.NoError(t, s.RemoveEducation(0))
	assert.Empty(t, s.State().Resume.Education)
}

func TestStore_SequenceReplay(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := s.AddProject(types.Project{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, s.UpdateProject(2, types.ProjectPatch{Name: strPtr("C")}))
	require.NoError(t, s.RemoveProject(1))

	var names []string
	for _, p := range s.State().Resume.Projects {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "C", "d"}, names)
}

func TestStore_IndexOutOfRange(t *testing.T) {
	s := New()

	err := s.UpdateExperience(0, types.ExperiencePatch{Title: strPtr("x")})
	var idxErr *IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, "experience", idxErr.Section)
	assert.Equal(t, 0, idxErr.Len)

	assert.Error(t, s.RemoveAchievement(-1))
	assert.False(t, s.IsDirty(), "rejected actions must not touch state")
}

func TestStore_LoadResumeMarksClean(t *testing.T) {
	s := New()
	require.NoError(t, s.UpdatePersonalInfo(types.PersonalInfoPatch{FullName: strPtr("Draft")}))
	require.True(t, s.IsDirty())

	doc := types.NewResumeDocument()
	doc.PersonalInfo.FullName = "Imported"
	doc.Experience = []types.Experience{{Title: "Dev", Company: "Acme"}}
	s.LoadResume(doc)

	st := s.State()
	assert.False(t, st.IsDirty)
	assert.Equal(t, "Imported", st.Resume.PersonalInfo.FullName)
	assert.NotEmpty(t, st.Resume.Experience[0].ID)

	require.NoError(t, s.AddSkill("technical", "Go"))
	assert.True(t, s.IsDirty())
}

func TestStore_SkillsAreSets(t *testing.T) {
	s := New()

	require.NoError(t, s.AddSkill("technical", "  Go "))
	require.NoError(t, s.AddSkill("technical", "Go"))
	require.NoError(t, s.AddSkill("technical", "   "))
	require.NoError(t, s.AddSkill("technical", "SQL"))
	assert.Equal(t, []string{"Go", "SQL"}, s.State().Resume.Skills.Technical)

	require.NoError(t, s.RemoveSkill("technical", "Go"))
	assert.Equal(t, []string{"SQL"}, s.State().Resume.Skills.Technical)

	require.NoError(t, s.UpdateSkills("languages", []string{"English", "Hindi"}))
	assert.Equal(t, []string{"English", "Hindi"}, s.State().Resume.Skills.Languages)

	var catErr *CategoryError
	assert.True(t, errors.As(s.AddSkill("hobbies", "chess"), &catErr))
}

func TestStore_TemplateAndFormattingLeaveDirtyAlone(t *testing.T) {
	s := New(WithTemplateResolver(func(id string) string {
		if id == "classic" {
			return id
		}
		return types.DefaultTemplateID
	}))

	assert.Equal(t, "classic", s.SetTemplate("classic"))
	assert.Equal(t, "modern", s.SetTemplate("does-not-exist"))

	s.UpdateFormatting(types.FormattingPatch{FontSize: strPtr("large")})
	s.SetSectionOrder([]types.SectionKey{types.SectionSkills})

	st := s.State()
	assert.False(t, st.IsDirty)
	assert.Equal(t, "large", st.Formatting.FontSize)
	assert.Equal(t, types.SectionSkills, st.SectionOrder[0])
	assert.Len(t, st.SectionOrder, 6)
}

func TestStore_ResetKeepsTemplate(t *testing.T) {
	s := New()
	s.SetTemplate("minimal")
	_, err := s.AddExperience(types.Experience{Title: "Dev", Company: "Acme"})
	require.NoError(t, err)

	s.ResetResume()
	st := s.State()
	assert.Empty(t, st.Resume.Experience)
	assert.False(t, st.IsDirty)
	assert.Equal(t, "minimal", st.Resume.TemplateID)

	s.MarkDirty()
	assert.True(t, s.IsDirty())
	s.ClearResume()
	assert.False(t, s.IsDirty())
}

func TestStore_MarkCleanAndDirty(t *testing.T) {
	s := New()
	s.MarkDirty()
	assert.True(t, s.IsDirty())
	s.MarkClean()
	assert.False(t, s.IsDirty())
}

func TestStore_PriorStatesAreNotMutated(t *testing.T) {
	s := New()
	_, err := s.AddExperience(types.Experience{Title: "Dev", Company: "Acme"})
	require.NoError(t, err)

	before := s.State()
	require.NoError(t, s.UpdateExperience(0, types.ExperiencePatch{Title: strPtr("Lead")}))

	assert.Equal(t, "Dev", before.Resume.Experience[0].Title)
	assert.Equal(t, "Lead", s.State().Resume.Experience[0].Title)
}

func TestStore_SubscribersRunInOrder(t *testing.T) {
	s := New()
	var calls []string

	s.Subscribe(func(a Action, _ State) { calls = append(calls, "first:"+a.Name()) })
	unsubscribe := s.Subscribe(func(a Action, _ State) { calls = append(calls, "second:"+a.Name()) })

	s.MarkDirty()
	unsubscribe()
	s.MarkClean()

	assert.Equal(t, []string{"first:markDirty", "second:markDirty", "first:markClean"}, calls)
}

func TestStore_RejectedActionDoesNotNotify(t *testing.T) {
	s := New()
	notified := false
	s.Subscribe(func(Action, State) { notified = true })

	require.Error(t, s.RemoveProject(3))
	assert.False(t, notified)
}

func TestStore_ByIDResolvesAtApplyTime(t *testing.T) {
	s := New()
	first, err := s.AddAchievement(types.Achievement{Title: "first"})
	require.NoError(t, err)
	second, err := s.AddAchievement(types.Achievement{Title: "second"})
	require.NoError(t, err)

	_, err = s.Dispatch(ByID{Section: SectionAchievements, ID: first.ID, Build: func(i int) Action {
		return RemoveAchievement{Index: i}
	}})
	require.NoError(t, err)

	_, err = s.Dispatch(ByID{Section: SectionAchievements, ID: second.ID, Build: func(i int) Action {
		return UpdateAchievement{Index: i, Patch: types.AchievementPatch{Issuer: strPtr("IEEE")}}
	}})
	require.NoError(t, err)

	st := s.State()
	require.Len(t, st.Resume.Achievements, 1)
	assert.Equal(t, "second", st.Resume.Achievements[0].Title)
	assert.Equal(t, "IEEE", st.Resume.Achievements[0].Issuer)

	_, err = s.Dispatch(ByID{Section: SectionAchievements, ID: first.ID, Build: func(i int) Action {
		return RemoveAchievement{Index: i}
	}})
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}
