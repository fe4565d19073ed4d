// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit items as bullets, then an overflow line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResume outputs a summary of the document: header, section sizes and
// the render settings.
func (p *Printer) PrintResume(st store.State) {
	doc := st.Resume
	var sb strings.Builder

	name := doc.PersonalInfo.FullName
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	if doc.PersonalInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", doc.PersonalInfo.Email))
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n", doc.TemplateID))
	sb.WriteString(fmt.Sprintf("Format:    %s / %s / %s / %s\n",
		st.Formatting.FontSize, st.Formatting.LineSpacing, st.Formatting.Margins, st.Formatting.ColorScheme))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience:    %d\n", len(doc.Experience)))
	sb.WriteString(fmt.Sprintf("Education:     %d\n", len(doc.Education)))
	sb.WriteString(fmt.Sprintf("Projects:      %d\n", len(doc.Projects)))
	sb.WriteString(fmt.Sprintf("Achievements:  %d\n", len(doc.Achievements)))
	sb.WriteString(fmt.Sprintf("Skills:        %d technical, %d soft, %d languages\n",
		len(doc.Skills.Technical), len(doc.Skills.Soft), len(doc.Skills.Languages)))

	order := make([]string, len(st.SectionOrder))
	for i, k := range st.SectionOrder {
		order[i] = string(k)
	}
	sb.WriteString(fmt.Sprintf("\nOrder: %s", strings.Join(order, ", ")))

	p.printBox("RESUME", sb.String())
}

// PrintAnalysis outputs the headline numbers and top findings of an
// analysis result.
func (p *Printer) PrintAnalysis(r *types.AnalysisResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS score: %.0f/100\n", r.ATSScore))
	if b := r.ATSBreakdown; b != nil {
		sb.WriteString(fmt.Sprintf("  keywords %.0f · experience %.0f · formatting %.0f\n",
			b.KeywordMatch, b.ExperienceRelevance, b.FormattingScore))
		sb.WriteString(fmt.Sprintf("  skills %.0f · language %.0f\n", b.SkillCoverage, b.LanguageQuality))
	}
	sb.WriteString("\n")

	writeList(&sb, "Top priorities", r.Top5Priorities, maxItemsToShow)
	writeList(&sb, "Missing keywords", r.MissingKeywords, maxItemsToShow)

	if len(r.SkillGaps) > 0 {
		gaps := make([]string, len(r.SkillGaps))
		for i, g := range r.SkillGaps {
			gaps[i] = g.Skill
			if g.Importance != "" {
				gaps[i] += " (" + g.Importance + ")"
			}
		}
		writeList(&sb, "Skill gaps", gaps, 3)
	}

	p.printBox("ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where a PDF was written.
func (p *Printer) PrintExport(path string, pages, size int) {
	content := fmt.Sprintf("File:   %s\nPages:  %d\nSize:   %d bytes", path, pages, size)
	if pages > 1 {
		content += "\n\nWarning: resume spans more than one page"
	}
	p.printBox("PDF EXPORT", content)
}
