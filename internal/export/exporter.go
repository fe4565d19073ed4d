package export

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/upload"
)

// DefaultFilename is used when the request carries none.
const DefaultFilename = "resume.pdf"

// ErrHTMLRequired is returned for an export request without markup.
var ErrHTMLRequired = errors.New("HTML content required")

// DisabledError is returned when PDF export is switched off.
type DisabledError struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

func (e *DisabledError) Error() string {
	return e.Message
}

// Request is a client export request.
type Request struct {
	HTML     string `json:"html"`
	Filename string `json:"filename"`
}

// Result is a printed PDF.
type Result struct {
	PDF      []byte
	Filename string
	Pages    int
}

// Exporter sanitizes, wraps and prints HTML.
type Exporter struct {
	printer Printer
	enabled bool
}

// NewExporter creates an exporter. A disabled exporter rejects every
// request with a DisabledError.
func NewExporter(p Printer, enabled bool) *Exporter {
	return &Exporter{printer: p, enabled: enabled}
}

// Enabled reports whether exports are served.
func (e *Exporter) Enabled() bool {
	return e.enabled && e.printer != nil
}

// Export prints client-supplied HTML.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, ErrHTMLRequired
	}
	if !e.Enabled() {
		return nil, &DisabledError{
			Message:    "PDF export available in local development only",
			Suggestion: "Use browser Print to PDF for now",
		}
	}

	fragment, err := Sanitize(req.HTML)
	if err != nil {
		return nil, err
	}
	filename := SafeFilename(req.Filename)
	doc, err := rendering.RenderDocument(strings.TrimSuffix(filename, ".pdf"), fragment)
	if err != nil {
		return nil, err
	}
	return e.print(ctx, doc, filename)
}

// ExportDocument prints an already complete print document produced by the
// renderer. It skips sanitizing.
func (e *Exporter) ExportDocument(ctx context.Context, document, filename string) (*Result, error) {
	if !e.Enabled() {
		return nil, &DisabledError{
			Message:    "PDF export available in local development only",
			Suggestion: "Use browser Print to PDF for now",
		}
	}
	return e.print(ctx, document, SafeFilename(filename))
}

func (e *Exporter) print(ctx context.Context, document, filename string) (*Result, error) {
	pdf, err := e.printer.PrintPDF(ctx, document)
	if err != nil {
		return nil, err
	}

	pages, err := upload.PageCount(pdf)
	if err != nil {
		log.Printf("[export] could not count pages of %s: %v", filename, err)
	}
	log.Printf("[export] %s: %d bytes, %d pages", filename, len(pdf), pages)
	return &Result{PDF: pdf, Filename: filename, Pages: pages}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._ -]+`)

// SafeFilename strips directories and header-breaking characters and
// ensures a .pdf extension.
func SafeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, ""))
	if name == "" || name == "." || name == ".pdf" {
		return DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
