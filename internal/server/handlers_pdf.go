package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ---------------------------------------------------------------------
// Templates, preview and PDF export
// ---------------------------------------------------------------------

type templateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type templatesResponse struct {
	Default      string         `json:"default"`
	Selected     string         `json:"selected"`
	Templates    []templateInfo `json:"templates"`
	ColorSchemes []string       `json:"colorSchemes"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	styles := s.registry.Styles()
	resp := templatesResponse{
		Default:      s.registry.DefaultID(),
		Selected:     s.registry.ResolveID(s.store.State().Resume.TemplateID),
		Templates:    make([]templateInfo, 0, len(styles)),
		ColorSchemes: rendering.ColorSchemes(),
	}
	for _, st := range styles {
		resp.Templates = append(resp.Templates, templateInfo{
			ID:          st.ID,
			Name:        st.Name,
			Category:    st.Category,
			Description: st.Description,
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handlePreview renders the live document as a print document. The
// template query parameter overrides the selected template.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	st := s.store.State()
	doc := st.Resume
	if t := r.URL.Query().Get("template"); t != "" {
		doc.TemplateID = t
	}
	html, err := s.registry.RenderPrintable(doc, st.Formatting, st.SectionOrder)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleResumePDF prints the live document with its selected template.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	st := s.store.State()
	html, err := s.registry.RenderPrintable(st.Resume, st.Formatting, st.SectionOrder)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.exporter.ExportDocument(r.Context(), html, rendering.DocumentTitle(st.Resume.PersonalInfo))
	if err != nil {
		s.exportError(w, err)
		return
	}
	s.writePDF(w, res)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req export.Request
	if !s.decodeJSON(w, r, &req) {
		return
	}
	res, err := s.exporter.Export(r.Context(), req)
	if err != nil {
		s.exportError(w, err)
		return
	}
	s.writePDF(w, res)
}

func (s *Server) exportError(w http.ResponseWriter, err error) {
	var disabled *export.DisabledError
	switch {
	case errors.As(err, &disabled):
		s.jsonResponse(w, http.StatusNotImplemented, disabled)
	case errors.Is(err, export.ErrHTMLRequired):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[pdf] export failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writePDF(w http.ResponseWriter, res *export.Result) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	if res.Pages > 0 {
		w.Header().Set("X-PDF-Pages", strconv.Itoa(res.Pages))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.PDF); err != nil {
		log.Printf("[pdf] failed to write response: %v", err)
	}
}
