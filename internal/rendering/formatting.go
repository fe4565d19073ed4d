package rendering

import "github.com/jonathan/resume-builder/internal/types"

// FontScale is the set of font sizes derived from a font-size tier.
type FontScale struct {
	Base string
	H1   string
	H2   string
	H3   string
}

// Palette is the accent colors of one color scheme.
type Palette struct {
	Primary string
	Dark    string
	Light   string
}

var fontScales = map[string]FontScale{
	types.FontSizeSmall:  {Base: "11px", H1: "22px", H2: "14px", H3: "12px"},
	types.FontSizeMedium: {Base: "12px", H1: "26px", H2: "15px", H3: "13px"},
	types.FontSizeLarge:  {Base: "14px", H1: "30px", H2: "17px", H3: "15px"},
}

var lineHeights = map[string]string{
	types.LineSpacingCompact: "1.3",
	types.LineSpacingNormal:  "1.5",
	types.LineSpacingRelaxed: "1.7",
}

var margins = map[string]string{
	types.MarginsNarrow: "24px",
	types.MarginsNormal: "40px",
	types.MarginsWide:   "56px",
}

// palettes are ordered; the first one is the fallback.
var palettes = []struct {
	name string
	Palette
}{
	{types.ColorSchemeBlue, Palette{Primary: "#2563eb", Dark: "#1d4ed8", Light: "#eff6ff"}},
	{types.ColorSchemePurple, Palette{Primary: "#9333ea", Dark: "#7e22ce", Light: "#faf5ff"}},
	{types.ColorSchemeGreen, Palette{Primary: "#16a34a", Dark: "#15803d", Light: "#f0fdf4"}},
}

// FontSizes returns the scale for a tier; unknown tiers get medium.
func FontSizes(tier string) FontScale {
	if s, ok := fontScales[tier]; ok {
		return s
	}
	return fontScales[types.FontSizeMedium]
}

// LineHeight returns the line height for a tier; unknown tiers get normal.
func LineHeight(tier string) string {
	if v, ok := lineHeights[tier]; ok {
		return v
	}
	return lineHeights[types.LineSpacingNormal]
}

// Margin returns the page padding for a tier; unknown tiers get normal.
func Margin(tier string) string {
	if v, ok := margins[tier]; ok {
		return v
	}
	return margins[types.MarginsNormal]
}

// PaletteFor returns the palette for a scheme; unknown schemes get the first palette.
func PaletteFor(scheme string) Palette {
	for _, p := range palettes {
		if p.name == scheme {
			return p.Palette
		}
	}
	return palettes[0].Palette
}

// ColorSchemes lists the known scheme names in order.
func ColorSchemes() []string {
	out := make([]string, len(palettes))
	for i, p := range palettes {
		out[i] = p.name
	}
	return out
}
