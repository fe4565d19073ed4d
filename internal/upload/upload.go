// Package upload validates PDF uploads before they are forwarded.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxBytes is the largest accepted upload.
const MaxBytes = 10 << 20

// FieldName is the multipart field carrying the file.
const FieldName = "file"

// Messages returned to clients.
const (
	MsgNoFile   = "No PDF file uploaded"
	MsgNotPDF   = "Please upload a PDF file"
	MsgTooLarge = "File too large (max 10MB)"
)

// Error is a rejected upload.
type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// File is an accepted PDF upload. Pages is 0 when the local parser could
// not read the document.
type File struct {
	Name  string
	Data  []byte
	Pages int
}

// Reader returns a fresh reader over the file's bytes.
func (f *File) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// FromRequest reads and validates the PDF in the request's multipart body.
// Extra form values are returned alongside.
func FromRequest(r *http.Request) (*File, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBytes+1<<20)
	if err := r.ParseMultipartForm(MaxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, &Error{Status: http.StatusRequestEntityTooLarge, Message: MsgTooLarge}
		}
		return nil, &Error{Status: http.StatusBadRequest, Message: MsgNoFile, Cause: err}
	}

	f, hdr, err := r.FormFile(FieldName)
	if err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: MsgNoFile}
	}
	defer f.Close()

	return fromPart(f, hdr)
}

func fromPart(f multipart.File, hdr *multipart.FileHeader) (*File, error) {
	if hdr.Size > MaxBytes {
		return nil, &Error{Status: http.StatusRequestEntityTooLarge, Message: MsgTooLarge}
	}
	data, err := io.ReadAll(io.LimitReader(f, MaxBytes+1))
	if err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: MsgNoFile, Cause: err}
	}
	return Validate(hdr.Filename, hdr.Header.Get("Content-Type"), data)
}

// Validate checks presence, size and type. The page count is best-effort:
// files the local parser rejects are still accepted and left to the backend.
func Validate(name, contentType string, data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: MsgNoFile}
	}
	if len(data) > MaxBytes {
		return nil, &Error{Status: http.StatusRequestEntityTooLarge, Message: MsgTooLarge}
	}
	if !looksLikePDF(name, contentType, data) {
		return nil, &Error{Status: http.StatusBadRequest, Message: MsgNotPDF}
	}

	if name == "" {
		name = "resume.pdf"
	}
	pages, err := PageCount(data)
	if err != nil {
		log.Printf("[upload] could not count pages of %s: %v", filepath.Base(name), err)
		pages = 0
	}
	return &File{Name: filepath.Base(name), Data: data, Pages: pages}, nil
}

func looksLikePDF(name, contentType string, data []byte) bool {
	declared := strings.HasPrefix(strings.ToLower(contentType), "application/pdf") ||
		strings.EqualFold(filepath.Ext(name), ".pdf")
	return declared && bytes.HasPrefix(data, []byte("%PDF-"))
}

// PageCount parses data and returns the number of pages.
func PageCount(data []byte) (n int, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	n = reader.NumPage()
	if n < 1 {
		return 0, errors.New("pdf has no pages")
	}
	return n, nil
}
