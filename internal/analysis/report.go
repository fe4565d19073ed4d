// Package analysis formats AI analysis results as a plain-text report.
package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

const rule = "================================================================================"

const reportTemplate = `
{{rule}}
                         AI RESUME ANALYSIS REPORT
{{rule}}
Generated: {{.Generated}}

{{rule}}
1. RESUME OVERVIEW
{{rule}}
{{or .R.ResumeOverview "No overview available"}}

{{rule}}
2. ATS COMPATIBILITY SCORE
{{rule}}
Overall Score: {{num .R.ATSScore}}/100

Score Breakdown:
  - Keyword Match:        {{num .B.KeywordMatch}}/100 (35% weight)
  - Experience Relevance: {{num .B.ExperienceRelevance}}/100 (25% weight)
  - Formatting Score:     {{num .B.FormattingScore}}/100 (20% weight)
  - Skill Coverage:       {{num .B.SkillCoverage}}/100 (10% weight)
  - Language Quality:     {{num .B.LanguageQuality}}/100 (10% weight)
{{if .R.ATSExplanation}}
{{.R.ATSExplanation}}
{{end}}
{{rule}}
3. SKILL & KEYWORD MATCH ANALYSIS
{{rule}}

STRENGTHS:
{{numbered .R.Strengths "No strengths identified"}}

WEAKNESSES:
{{numbered .R.Weaknesses "No weaknesses identified"}}

MATCHED KEYWORDS:
{{bulleted .R.MatchedKeywords "None identified"}}

MISSING KEYWORDS:
{{bulleted .R.MissingKeywords "None identified"}}

SKILL GAPS:
{{gaps .R.SkillGaps}}

{{rule}}
4. EXPERIENCE QUALITY REVIEW
{{rule}}

BULLET POINT IMPROVEMENTS:
{{improvements .R.BulletImprovements}}

{{rule}}
5. CAREER GROWTH RECOMMENDATIONS
{{rule}}

{{or .R.CareerGuidance "No career guidance available"}}

RECOMMENDED SKILLS TO LEARN:
{{numbered .R.RecommendedSkills "None recommended"}}

RECOMMENDED CERTIFICATIONS:
{{numbered .R.RecommendedCertification "None recommended"}}

PROJECT IDEAS:
{{numbered .R.ProjectIdeas "None suggested"}}

{{rule}}
6. TOP 5 PRIORITIZED ACTIONS
{{rule}}
{{numbered .R.Top5Priorities "No priority actions identified"}}
{{with .R.JDMatchPercentage}}
{{rule}}
7. JOB DESCRIPTION MATCH
{{rule}}
Match Percentage: {{num .}}%
{{with $.R.JDMatchDetails}}
{{.}}
{{end}}{{end}}
{{rule}}
                              END OF REPORT
{{rule}}
`

var report = template.Must(template.New("report").Funcs(template.FuncMap{
	"rule":         func() string { return rule },
	"num":          formatNumber,
	"numbered":     numbered,
	"bulleted":     bulleted,
	"gaps":         gaps,
	"improvements": improvements,
}).Parse(reportTemplate))

type reportData struct {
	Generated string
	R         types.AnalysisResult
	B         types.ATSBreakdown
}

// FormatReport renders r as the downloadable text report.
func FormatReport(r types.AnalysisResult, generatedAt time.Time) (string, error) {
	data := reportData{
		Generated: generatedAt.Format("2006-01-02 at 15:04:05"),
		R:         r,
	}
	if r.ATSBreakdown != nil {
		data.B = *r.ATSBreakdown
	}

	var out strings.Builder
	if err := report.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to format analysis report: %w", err)
	}
	return out.String(), nil
}

// ReportFilename is the download name for a report generated at t.
func ReportFilename(t time.Time) string {
	return "resume-analysis-" + t.Format("2006-01-02") + ".txt"
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case *float64:
		if n == nil {
			return "0"
		}
		return strconv.FormatFloat(*n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func numbered(items []string, empty string) string {
	if len(items) == 0 {
		return "  " + empty
	}
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, s)
	}
	return strings.Join(lines, "\n")
}

func bulleted(items []string, empty string) string {
	if len(items) == 0 {
		return "  " + empty
	}
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "  • " + s
	}
	return strings.Join(lines, "\n")
}

func gaps(items []types.SkillGap) string {
	if len(items) == 0 {
		return "  No skill gaps identified"
	}
	blocks := make([]string, len(items))
	for i, g := range items {
		blocks[i] = fmt.Sprintf("  • %s (%s)\n    Recommendation: %s", g.Skill, g.Importance, g.Recommendation)
	}
	return strings.Join(blocks, "\n\n")
}

func improvements(items []types.BulletImprovement) string {
	if len(items) == 0 {
		return "  No improvements suggested"
	}
	blocks := make([]string, len(items))
	for i, imp := range items {
		section := imp.Section
		if section == "" {
			section = "General"
		}
		blocks[i] = fmt.Sprintf("  %d. [%s]\n     Original: %q\n     Improved: %q\n     Reason: %s",
			i+1, section, imp.Original, imp.Improved, imp.Reason)
	}
	return strings.Join(blocks, "\n\n")
}
