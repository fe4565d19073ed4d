package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// PrintCSS is embedded in every standalone print document.
const PrintCSS = `@page { size: A4; margin: 8mm; }
html, body { margin: 0; padding: 0; background: #ffffff; }
body { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
` + PageBreakCSS

type printView struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// DocumentTitle is the title of the print document for a resume.
func DocumentTitle(p types.PersonalInfo) string {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		name = "Resume"
	}
	return name + " - Resume"
}

// RenderDocument wraps a rendered fragment into a standalone A4 print
// document. The fragment is trusted: it must come from Render or from a
// sanitizer.
func RenderDocument(title, fragment string) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	err = tmpl.ExecuteTemplate(&out, "print", printView{
		Title: title,
		CSS:   template.CSS(PrintCSS),
		Body:  template.HTML(fragment), //nolint:gosec // fragment is renderer output or sanitized input
	})
	if err != nil {
		return "", &TemplateError{Message: "failed to execute print template", Cause: err}
	}
	return out.String(), nil
}

// RenderPrintable renders doc with the resolved template and wraps it into
// a print document.
func (r *Registry) RenderPrintable(doc types.ResumeDocument, f types.FormattingPreferences, order []types.SectionKey) (string, error) {
	fragment, err := r.Resolve(doc.TemplateID).Render(doc, f, order)
	if err != nil {
		return "", err
	}
	return RenderDocument(DocumentTitle(doc.PersonalInfo), fragment)
}
