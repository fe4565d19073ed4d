package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// NamePlaceholder is shown when the document has no full name.
const NamePlaceholder = "Your Name"

// Renderer renders documents with one style.
type Renderer struct {
	style Style
	tmpl  *template.Template
}

type resumeView struct {
	Style    Style
	CSS      template.CSS
	Name     string
	Contacts []contactView
	Main     []sectionView
	Side     []sectionView
}

type sectionView struct {
	Key          types.SectionKey
	Title        string
	Summary      string
	Tags         bool
	Experience   []entryView
	Education    []entryView
	Projects     []entryView
	Achievements []entryView
	Skills       []skillGroup
}

type entryView struct {
	Title    string
	Subtitle string
	Dates    string
	Detail   string
	Bullets  []string
}

type skillGroup struct {
	Label  string
	Values []string
}

var loadTemplates = sync.OnceValues(parseTemplates)

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse templates",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// Style returns the descriptor this renderer uses.
func (r *Renderer) Style() Style {
	return r.style
}

// Render produces the HTML fragment for doc. Sections appear in order (nil
// means the default order) and are omitted entirely when empty.
func (r *Renderer) Render(doc types.ResumeDocument, f types.FormattingPreferences, order []types.SectionKey) (string, error) {
	view := r.buildView(doc, f, types.NormalizeSectionOrder(order))

	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, "resume", view); err != nil {
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to execute template %s", r.style.ID),
			Cause:   err,
		}
	}
	return out.String(), nil
}

func (r *Renderer) buildView(doc types.ResumeDocument, f types.FormattingPreferences, order []types.SectionKey) resumeView {
	view := resumeView{
		Style:    r.style,
		CSS:      buildCSS(r.style, f),
		Name:     doc.PersonalInfo.FullName,
		Contacts: contacts(doc.PersonalInfo),
	}
	if strings.TrimSpace(view.Name) == "" {
		view.Name = NamePlaceholder
	}

	side := make(map[types.SectionKey]bool)
	if r.style.Layout == LayoutSidebar {
		for _, k := range r.style.SidebarSections {
			side[k] = true
		}
	}

	for _, key := range order {
		sec, ok := r.section(doc, key)
		if !ok {
			continue
		}
		if side[key] {
			view.Side = append(view.Side, sec)
		} else {
			view.Main = append(view.Main, sec)
		}
	}
	return view
}

// section builds one section view; ok is false when the section has no data.
func (r *Renderer) section(doc types.ResumeDocument, key types.SectionKey) (sectionView, bool) {
	sec := sectionView{Key: key, Title: r.style.Title(key), Tags: r.style.Skills == SkillsTags}

	switch key {
	case types.SectionSummary:
		sec.Summary = strings.TrimSpace(doc.PersonalInfo.Summary)
		return sec, sec.Summary != ""

	case types.SectionExperience:
		for _, e := range doc.Experience {
			end := e.EndDate
			if e.Current {
				end = "Present"
			}
			sec.Experience = append(sec.Experience, entryView{
				Title:    e.Title,
				Subtitle: joinNonEmpty(" · ", e.Company, e.Location),
				Dates:    dateRange(e.StartDate, end),
				Bullets:  SplitBullets(e.Description),
			})
		}
		return sec, len(sec.Experience) > 0

	case types.SectionEducation:
		for _, e := range doc.Education {
			title := e.Degree
			if e.Field != "" {
				title = joinNonEmpty(" in ", e.Degree, e.Field)
			}
			detail := ""
			if e.GPA != "" {
				detail = "GPA: " + e.GPA
			}
			sec.Education = append(sec.Education, entryView{
				Title:    title,
				Subtitle: joinNonEmpty(" · ", e.Institution, e.Location),
				Dates:    e.GraduationDate,
				Detail:   detail,
			})
		}
		return sec, len(sec.Education) > 0

	case types.SectionProjects:
		for _, p := range doc.Projects {
			sec.Projects = append(sec.Projects, entryView{
				Title:    p.Name,
				Subtitle: joinNonEmpty(" · ", p.Technologies, p.Link),
				Bullets:  SplitBullets(p.Description),
			})
		}
		return sec, len(sec.Projects) > 0

	case types.SectionSkills:
		for _, c := range types.SkillCategories {
			values := doc.Skills.Get(c)
			if len(values) == 0 {
				continue
			}
			sec.Skills = append(sec.Skills, skillGroup{Label: skillLabels[c], Values: values})
		}
		return sec, len(sec.Skills) > 0

	case types.SectionAchievements:
		for _, a := range doc.Achievements {
			sec.Achievements = append(sec.Achievements, entryView{
				Title:    a.Title,
				Subtitle: a.Issuer,
				Dates:    a.Date,
				Detail:   a.Description,
			})
		}
		return sec, len(sec.Achievements) > 0
	}
	return sec, false
}

var skillLabels = map[types.SkillCategory]string{
	types.SkillsTechnical: "Technical",
	types.SkillsSoft:      "Soft Skills",
	types.SkillsLanguages: "Languages",
}

// contactView is one header contact. Href is set for profile links.
type contactView struct {
	Text string
	Href string
}

func contacts(p types.PersonalInfo) []contactView {
	var out []contactView
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, contactView{Text: v})
		}
	}
	links := []struct{ label, url string }{
		{"LinkedIn", p.LinkedIn},
		{"GitHub", p.GitHub},
		{"Portfolio", p.Portfolio},
	}
	for _, l := range links {
		if u := strings.TrimSpace(l.url); u != "" {
			out = append(out, contactView{Text: l.label, Href: u})
		}
	}
	return out
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	default:
		return end
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
