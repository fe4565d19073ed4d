package rendering

import (
	"regexp"
	"strings"
)

var bulletMarker = regexp.MustCompile(`^[-•]\s*`)

// SplitBullets splits free text into bullet items: one per non-blank line,
// with a leading "-" or "•" marker removed.
func SplitBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
