package types

// ATSBreakdown is the per-dimension ATS score returned by the AI backend.
type ATSBreakdown struct {
	KeywordMatch        float64 `json:"keyword_match"`
	ExperienceRelevance float64 `json:"experience_relevance"`
	FormattingScore     float64 `json:"formatting_score"`
	SkillCoverage       float64 `json:"skill_coverage"`
	LanguageQuality     float64 `json:"language_quality"`
}

// SkillGap is a skill the backend thinks is missing.
type SkillGap struct {
	Skill          string `json:"skill"`
	Importance     string `json:"importance"`
	Recommendation string `json:"recommendation"`
}

// BulletImprovement is a suggested rewrite of one bullet.
type BulletImprovement struct {
	Section  string `json:"section"`
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

// AnalysisResult is the transient structure returned by the AI analysis
// endpoints. It is never written back into the resume document.
type AnalysisResult struct {
	ATSScore                 float64             `json:"ats_score"`
	ATSBreakdown             *ATSBreakdown       `json:"ats_breakdown,omitempty"`
	ATSExplanation           string              `json:"ats_explanation,omitempty"`
	ResumeOverview           string              `json:"resume_overview,omitempty"`
	Strengths                []string            `json:"strengths,omitempty"`
	Weaknesses               []string            `json:"weaknesses,omitempty"`
	MatchedKeywords          []string            `json:"matched_keywords,omitempty"`
	MissingKeywords          []string            `json:"missing_keywords,omitempty"`
	SkillGaps                []SkillGap          `json:"skill_gaps,omitempty"`
	BulletImprovements       []BulletImprovement `json:"bullet_improvements,omitempty"`
	CareerGuidance           string              `json:"career_guidance,omitempty"`
	RecommendedSkills        []string            `json:"recommended_skills,omitempty"`
	RecommendedCertification []string            `json:"recommended_certifications,omitempty"`
	ProjectIdeas             []string            `json:"project_ideas,omitempty"`
	Top5Priorities           []string            `json:"top_5_priorities,omitempty"`
	JDMatchPercentage        *float64            `json:"jd_match_percentage,omitempty"`
	JDMatchDetails           string              `json:"jd_match_details,omitempty"`
}

// AnalyzeRequest is the JSON body sent to the backend's analyze endpoint.
type AnalyzeRequest struct {
	ResumeData     ResumeDocument `json:"resume_data"`
	JobDescription string         `json:"job_description,omitempty"`
}

// ImportResponse is the envelope returned by the backend's import endpoint.
type ImportResponse struct {
	Success bool            `json:"success"`
	Data    *ResumeDocument `json:"data,omitempty"`
}
