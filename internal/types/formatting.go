package types

// Font size tiers
const (
	FontSizeSmall  = "small"
	FontSizeMedium = "medium"
	FontSizeLarge  = "large"
)

// Line spacing tiers
const (
	LineSpacingCompact = "compact"
	LineSpacingNormal  = "normal"
	LineSpacingRelaxed = "relaxed"
)

// Margin tiers
const (
	MarginsNarrow = "narrow"
	MarginsNormal = "normal"
	MarginsWide   = "wide"
)

// Color schemes. The first one listed is the fallback.
const (
	ColorSchemeBlue   = "blue"
	ColorSchemePurple = "purple"
	ColorSchemeGreen  = "green"
)

// FormattingPreferences is display tuning that lives beside the document.
// Unrecognized values are kept as given; renderers fall back per field.
type FormattingPreferences struct {
	FontSize    string `json:"fontSize"`
	LineSpacing string `json:"lineSpacing"`
	Margins     string `json:"margins"`
	ColorScheme string `json:"colorScheme"`
}

// DefaultFormatting returns the formatting used on first load.
func DefaultFormatting() FormattingPreferences {
	return FormattingPreferences{
		FontSize:    FontSizeMedium,
		LineSpacing: LineSpacingNormal,
		Margins:     MarginsNormal,
		ColorScheme: ColorSchemeBlue,
	}
}

// FormattingPatch carries a partial formatting update; nil fields are left unchanged.
type FormattingPatch struct {
	FontSize    *string `json:"fontSize,omitempty"`
	LineSpacing *string `json:"lineSpacing,omitempty"`
	Margins     *string `json:"margins,omitempty"`
	ColorScheme *string `json:"colorScheme,omitempty"`
}

// Apply merges the patch into f.
func (p FormattingPatch) Apply(f FormattingPreferences) FormattingPreferences {
	if p.FontSize != nil {
		f.FontSize = *p.FontSize
	}
	if p.LineSpacing != nil {
		f.LineSpacing = *p.LineSpacing
	}
	if p.Margins != nil {
		f.Margins = *p.Margins
	}
	if p.ColorScheme != nil {
		f.ColorScheme = *p.ColorScheme
	}
	return f
}
