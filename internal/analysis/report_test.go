package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

var generated = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestFormatReport_Full(t *testing.T) {
	match := 72.5
	r := types.AnalysisResult{
		ATSScore:       81,
		ATSBreakdown:   &types.ATSBreakdown{KeywordMatch: 90, ExperienceRelevance: 80, FormattingScore: 70, SkillCoverage: 60, LanguageQuality: 50},
		ATSExplanation: "Strong keyword coverage.",
		ResumeOverview: "Backend engineer with 6 years of Go.",
		Strengths:      []string{"Quantified impact", "Clear structure"},
		MissingKeywords: []string{
			"Kubernetes",
		},
		SkillGaps:          []types.SkillGap{{Skill: "Terraform", Importance: "medium", Recommendation: "Automate a staging stack"}},
		BulletImprovements: []types.BulletImprovement{{Original: "Did stuff", Improved: "Cut latency 40%", Reason: "Adds a metric"}},
		Top5Priorities:     []string{"Add metrics"},
		JDMatchPercentage:  &match,
		JDMatchDetails:     "Good overlap on Go and SQL.",
	}

	out, err := FormatReport(r, generated)
	require.NoError(t, err)

	assert.Contains(t, out, "Generated: 2026-03-14 at 15:09:26")
	assert.Contains(t, out, "Overall Score: 81/100")
	assert.Contains(t, out, "Keyword Match:        90/100 (35% weight)")
	assert.Contains(t, out, "Language Quality:     50/100 (10% weight)")
	assert.Contains(t, out, "  1. Quantified impact\n  2. Clear structure")
	assert.Contains(t, out, "  • Kubernetes")
	assert.Contains(t, out, "MATCHED KEYWORDS:\n  None identified")
	assert.Contains(t, out, "  • Terraform (medium)\n    Recommendation: Automate a staging stack")
	assert.Contains(t, out, "[General]")
	assert.Contains(t, out, `Improved: "Cut latency 40%"`)
	assert.Contains(t, out, "7. JOB DESCRIPTION MATCH")
	assert.Contains(t, out, "Match Percentage: 72.5%")
	assert.Contains(t, out, "Good overlap on Go and SQL.")
	assert.Contains(t, out, "END OF REPORT")
}

func TestFormatReport_EmptyResult(t *testing.T) {
	out, err := FormatReport(types.AnalysisResult{}, generated)
	require.NoError(t, err)

	assert.Contains(t, out, "No overview available")
	assert.Contains(t, out, "Overall Score: 0/100")
	assert.Contains(t, out, "Keyword Match:        0/100")
	assert.Contains(t, out, "No skill gaps identified")
	assert.Contains(t, out, "No improvements suggested")
	assert.Contains(t, out, "No priority actions identified")
	assert.NotContains(t, out, "JOB DESCRIPTION MATCH")
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "resume-analysis-2026-03-14.txt", ReportFilename(generated))
}
