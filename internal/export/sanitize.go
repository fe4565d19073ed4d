// Package export turns rendered resume HTML into PDF files.
package export

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var strippedElements = "script, iframe, frame, frameset, object, embed, applet, base, meta[http-equiv], link"

// Sanitize removes active content from client-supplied HTML: scripts,
// frames, embedded objects, inline event handlers and javascript: URLs.
// Styles are kept. The result is a fragment suitable for the print
// document body.
func Sanitize(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find(strippedElements).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		var drop []string
		for _, attr := range node.Attr {
			key := strings.ToLower(attr.Key)
			val := strings.ToLower(strings.TrimSpace(attr.Val))
			switch {
			case strings.HasPrefix(key, "on"):
				drop = append(drop, attr.Key)
			case (key == "href" || key == "src" || key == "action" || key == "formaction" || key == "xlink:href") &&
				(strings.HasPrefix(val, "javascript:") || strings.HasPrefix(val, "vbscript:")):
				drop = append(drop, attr.Key)
			}
		}
		for _, k := range drop {
			s.RemoveAttr(k)
		}
	})

	var out strings.Builder
	var styleErr error
	doc.Find("head style").Each(func(_ int, s *goquery.Selection) {
		if styleErr != nil {
			return
		}
		h, err := goquery.OuterHtml(s)
		if err != nil {
			styleErr = err
			return
		}
		out.WriteString(h)
		out.WriteString("\n")
	})
	if styleErr != nil {
		return "", fmt.Errorf("failed to serialize styles: %w", styleErr)
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize body: %w", err)
	}
	out.WriteString(body)
	return out.String(), nil
}
