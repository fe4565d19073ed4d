package rendering

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// PageBreakCSS keeps sections and entries on one page and headings with
// their content.
const PageBreakCSS = `.section, .entry { break-inside: avoid; page-break-inside: avoid; }
h1, h2, h3 { break-after: avoid; page-break-after: avoid; }`

const monoText = "#111827"

// buildCSS derives the stylesheet for a style and formatting. Every value
// comes from the lookup tables or the style row, never from the document.
func buildCSS(s Style, f types.FormattingPreferences) template.CSS {
	fonts := FontSizes(f.FontSize)
	pal := PaletteFor(f.ColorScheme)
	if s.Monochrome {
		pal = Palette{Primary: monoText, Dark: monoText, Light: "#f3f4f6"}
	}

	headingFont := s.FontFamily
	if s.HeadingFont != "" {
		headingFont = s.HeadingFont
	}
	transform := "none"
	if s.Uppercase {
		transform = "uppercase"
	}
	nameAlign := "left"
	if s.CenterName {
		nameAlign = "center"
	}
	marker := s.Marker
	if marker == "" {
		marker = "disc"
	}

	var rule string
	switch s.HeadingRule {
	case RuleUnderline:
		rule = fmt.Sprintf("border-bottom: 1px solid %s; padding-bottom: 4px;", pal.Primary)
	case RuleBar:
		rule = fmt.Sprintf("border-left: 4px solid %s; padding-left: 8px;", pal.Primary)
	default:
		rule = "border: none;"
	}

	var b strings.Builder
	fmt.Fprintf(&b, ".resume { font-family: %s; font-size: %s; line-height: %s; padding: %s; color: #1f2937; background: #ffffff; box-sizing: border-box; }\n",
		s.FontFamily, fonts.Base, LineHeight(f.LineSpacing), Margin(f.Margins))
	fmt.Fprintf(&b, ".resume h1 { font-size: %s; margin: 0 0 4px; color: %s; text-align: %s; font-family: %s; }\n",
		fonts.H1, pal.Dark, nameAlign, headingFont)
	fmt.Fprintf(&b, ".resume h2 { font-size: %s; margin: 16px 0 8px; color: %s; text-transform: %s; font-family: %s; %s }\n",
		fonts.H2, pal.Primary, transform, headingFont, rule)
	fmt.Fprintf(&b, ".resume h3 { font-size: %s; margin: 0; }\n", fonts.H3)
	fmt.Fprintf(&b, ".resume .contacts { text-align: %s; color: #4b5563; }\n", nameAlign)
	b.WriteString(".resume .contacts a { color: inherit; text-decoration: none; }\n")
	b.WriteString(".resume .entry { margin-bottom: 10px; }\n")
	b.WriteString(".resume .entry-head { display: flex; justify-content: space-between; align-items: baseline; gap: 8px; }\n")
	b.WriteString(".resume .dates, .resume .entry-sub { color: #4b5563; }\n")
	fmt.Fprintf(&b, ".resume ul { margin: 4px 0 0 18px; padding: 0; list-style-type: %s; }\n", marker)
	fmt.Fprintf(&b, ".resume .tag { display: inline-block; padding: 2px 8px; margin: 2px; border-radius: 4px; background: %s; color: %s; }\n",
		pal.Light, pal.Dark)
	b.WriteString(".resume .skill-label { font-weight: 600; }\n")

	switch s.Layout {
	case LayoutHeaderBand:
		fmt.Fprintf(&b, ".resume .band { background: %s; color: #ffffff; margin: -%s -%s 16px; padding: 24px %s; }\n",
			pal.Primary, Margin(f.Margins), Margin(f.Margins), Margin(f.Margins))
		b.WriteString(".resume .band h1, .resume .band .contacts { color: #ffffff; }\n")
	case LayoutSidebar:
		b.WriteString(".resume .columns { display: flex; gap: 24px; }\n")
		fmt.Fprintf(&b, ".resume .sidebar { width: 32%%; background: %s; padding: 12px; box-sizing: border-box; }\n", pal.Light)
		b.WriteString(".resume .main { flex: 1; }\n")
	}

	b.WriteString(scopeToResume(PageBreakCSS))
	return template.CSS(b.String())
}

func scopeToResume(css string) string {
	css = strings.ReplaceAll(css, ".section, .entry", ".resume .section, .resume .entry")
	css = strings.ReplaceAll(css, "h1, h2, h3", ".resume h1, .resume h2, .resume h3")
	return css + "\n"
}
