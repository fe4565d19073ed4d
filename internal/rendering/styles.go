package rendering

import "github.com/jonathan/resume-builder/internal/types"

// Layout is the page structure a style uses.
type Layout string

// Layouts
const (
	LayoutSingle     Layout = "single"
	LayoutSidebar    Layout = "sidebar"
	LayoutHeaderBand Layout = "band"
)

// HeadingRule is the decoration under or beside section headings.
type HeadingRule string

// Heading rules
const (
	RuleUnderline HeadingRule = "underline"
	RuleBar       HeadingRule = "bar"
	RuleNone      HeadingRule = "none"
)

// SkillStyle controls how skill lists are printed.
type SkillStyle string

// Skill styles
const (
	SkillsInline SkillStyle = "inline"
	SkillsTags   SkillStyle = "tags"
)

// Font stacks shared by several styles.
const (
	fontSans     = "'Inter', 'Segoe UI', system-ui, sans-serif"
	fontSystem   = "system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif"
	fontSerif    = "Georgia, 'Times New Roman', serif"
	fontGaramond = "'Garamond', 'EB Garamond', Georgia, serif"
	fontRoboto   = "'Roboto', 'Segoe UI', system-ui, sans-serif"
	fontSource   = "'Source Sans Pro', 'Segoe UI', Arial, sans-serif"
	fontMono     = "'Consolas', 'Monaco', monospace"
)

// Style describes one visual template. Every template renders the same
// document shape; only these values differ.
type Style struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	FontFamily  string      `json:"fontFamily"`
	HeadingFont string      `json:"headingFont,omitempty"`
	Layout      Layout      `json:"layout"`
	HeadingRule HeadingRule `json:"headingRule"`
	Uppercase   bool        `json:"uppercase"`
	CenterName  bool        `json:"centerName"`
	// Monochrome styles ignore the color scheme.
	Monochrome bool       `json:"monochrome"`
	Skills     SkillStyle `json:"skills"`
	Marker     string     `json:"marker"`
	// SidebarSections are rendered in the side column for sidebar layouts.
	SidebarSections []types.SectionKey          `json:"sidebarSections,omitempty"`
	Titles          map[types.SectionKey]string `json:"titles,omitempty"`
}

var defaultTitles = map[types.SectionKey]string{
	types.SectionSummary:      "Professional Summary",
	types.SectionExperience:   "Experience",
	types.SectionEducation:    "Education",
	types.SectionProjects:     "Projects",
	types.SectionSkills:       "Skills",
	types.SectionAchievements: "Achievements",
}

// Title returns the heading used for a section.
func (s Style) Title(k types.SectionKey) string {
	if t, ok := s.Titles[k]; ok {
		return t
	}
	return defaultTitles[k]
}

var sideSkillsEducation = []types.SectionKey{types.SectionSkills, types.SectionEducation}

// builtinStyles is the template gallery in display order.
var builtinStyles = []Style{
	{
		ID: "ats", Name: "ATS Friendly", Category: "Standard",
		Description: "Plain single column that parses cleanly in applicant tracking systems",
		FontFamily:  fontSans, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		Uppercase: true, Monochrome: true, Skills: SkillsInline, Marker: "disc",
	},
	{
		ID: "modern", Name: "Modern", Category: "Standard",
		Description: "Accent-colored headings with skill tags",
		FontFamily:  fontSystem, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		Skills: SkillsTags, Marker: "disc",
	},
	{
		ID: "classic", Name: "Classic", Category: "Traditional",
		Description: "Serif type with a centered name",
		FontFamily:  fontSerif, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		Uppercase: true, CenterName: true, Monochrome: true, Skills: SkillsInline, Marker: "disc",
	},
	{
		ID: "executive", Name: "Executive", Category: "Professional",
		Description: "Colored header band for senior roles",
		FontFamily:  fontGaramond, Layout: LayoutHeaderBand, HeadingRule: RuleUnderline,
		Uppercase: true, Skills: SkillsInline, Marker: "square",
		Titles: map[types.SectionKey]string{
			types.SectionSummary:      "Executive Summary",
			types.SectionExperience:   "Professional Experience",
			types.SectionSkills:       "Core Competencies",
			types.SectionAchievements: "Honors & Awards",
		},
	},
	{
		ID: "minimal", Name: "Minimal", Category: "Clean",
		Description: "Generous whitespace and no rules",
		FontFamily:  fontSystem, Layout: LayoutSingle, HeadingRule: RuleNone,
		Skills: SkillsInline, Marker: "none",
		Titles: map[types.SectionKey]string{types.SectionSummary: "Profile"},
	},
	{
		ID: "compact", Name: "Compact", Category: "Dense",
		Description: "Tight spacing to fit more on one page",
		FontFamily:  fontSans, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		Uppercase: true, Skills: SkillsInline, Marker: "disc",
	},
	{
		ID: "creative", Name: "Creative", Category: "Modern",
		Description: "Bold accent bars and skill tags",
		FontFamily:  fontSource, Layout: LayoutHeaderBand, HeadingRule: RuleBar,
		Skills: SkillsTags, Marker: "disc",
		Titles: map[types.SectionKey]string{types.SectionSummary: "About Me", types.SectionSkills: "Expertise"},
	},
	{
		ID: "corporate", Name: "Corporate", Category: "Professional",
		Description: "Conservative layout with underlined headings",
		FontFamily:  fontSans, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		Uppercase: true, Skills: SkillsInline, Marker: "square",
		Titles: map[types.SectionKey]string{types.SectionExperience: "Professional Experience"},
	},
	{
		ID: "academic", Name: "Academic", Category: "Education",
		Description: "Education first, serif type",
		FontFamily:  fontSerif, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		CenterName: true, Skills: SkillsInline, Marker: "disc",
		Titles: map[types.SectionKey]string{
			types.SectionSummary:      "Career Objective",
			types.SectionProjects:     "Projects & Publications",
			types.SectionAchievements: "Honors",
		},
	},
	{
		ID: "technical", Name: "Technical", Category: "Tech",
		Description: "Monospace skill tags and bar headings for engineering roles",
		FontFamily:  fontSystem, HeadingFont: fontMono, Layout: LayoutSingle, HeadingRule: RuleBar,
		Uppercase: true, Skills: SkillsTags, Marker: "disc",
		Titles: map[types.SectionKey]string{types.SectionSkills: "Technical Skills", types.SectionProjects: "Key Projects"},
	},
	{
		ID: "elegant", Name: "Elegant", Category: "Premium",
		Description: "Centered serif header with thin rules",
		FontFamily:  fontGaramond, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		CenterName: true, Skills: SkillsInline, Marker: "none",
		Titles: map[types.SectionKey]string{types.SectionSummary: "Profile Summary", types.SectionAchievements: "Awards & Certifications"},
	},
	{
		ID: "professional", Name: "Professional", Category: "Universal",
		Description: "Balanced default for most industries",
		FontFamily:  fontSans, Layout: LayoutSingle, HeadingRule: RuleUnderline,
		Uppercase: true, Skills: SkillsTags, Marker: "disc",
		Titles: map[types.SectionKey]string{types.SectionExperience: "Professional Experience"},
	},
	{
		ID: "sidebar", Name: "Sidebar", Category: "Modern",
		Description: "Tinted side column for skills and education",
		FontFamily:  fontRoboto, Layout: LayoutSidebar, HeadingRule: RuleUnderline,
		Uppercase: true, Skills: SkillsTags, Marker: "disc",
		SidebarSections: sideSkillsEducation,
	},
	{
		ID: "twocolumn", Name: "Two Column", Category: "Modern",
		Description: "Two columns with achievements beside the main story",
		FontFamily:  fontSystem, Layout: LayoutSidebar, HeadingRule: RuleUnderline,
		Uppercase: true, Skills: SkillsInline, Marker: "disc",
		SidebarSections: []types.SectionKey{types.SectionSkills, types.SectionEducation, types.SectionAchievements},
	},
	{
		ID: "modernsplit", Name: "Modern Split", Category: "Modern",
		Description: "Header band above a split body",
		FontFamily:  fontSource, Layout: LayoutSidebar, HeadingRule: RuleBar,
		Skills: SkillsTags, Marker: "disc",
		SidebarSections: sideSkillsEducation,
	},
	{
		ID: "boldheader", Name: "Bold Header", Category: "Creative",
		Description: "Full-width colored header",
		FontFamily:  fontSource, Layout: LayoutHeaderBand, HeadingRule: RuleBar,
		Uppercase: true, Skills: SkillsTags, Marker: "disc",
	},
	{
		ID: "cleangrid", Name: "Clean Grid", Category: "Clean",
		Description: "Light grid with tinted skill tags",
		FontFamily:  fontSans, Layout: LayoutSingle, HeadingRule: RuleNone,
		Uppercase: true, Skills: SkillsTags, Marker: "none",
	},
	{
		ID: "blueaccent", Name: "Blue Accent", Category: "Standard",
		Description: "Accent bars beside each heading",
		FontFamily:  fontSystem, Layout: LayoutSingle, HeadingRule: RuleBar,
		Skills: SkillsInline, Marker: "disc",
	},
}

// Styles returns a copy of the built-in style descriptors.
func Styles() []Style {
	return append([]Style{}, builtinStyles...)
}
