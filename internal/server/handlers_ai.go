package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/upload"
)

// ---------------------------------------------------------------------
// AI backend pass-through. Backend status and body are returned unchanged.
// ---------------------------------------------------------------------

func (s *Server) handleProxyAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	resp, err := s.ai.ForwardJSON(r.Context(), aiclient.PathAnalyze, body)
	if err != nil {
		s.proxyError(w, "analyze", err)
		return
	}
	s.forward(w, resp)
}

func (s *Server) handleProxyAnalyzePDF(w http.ResponseWriter, r *http.Request) {
	f, err := upload.FromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fields := map[string]string{"job_description": r.FormValue("job_description")}
	resp, err := s.ai.ForwardFile(r.Context(), aiclient.PathAnalyzePDF, aiclient.File{Name: f.Name, Reader: f.Reader()}, fields)
	if err != nil {
		s.proxyError(w, "analyze-pdf", err)
		return
	}
	s.forward(w, resp)
}

func (s *Server) handleProxyImportResume(w http.ResponseWriter, r *http.Request) {
	f, err := upload.FromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.ai.ForwardFile(r.Context(), aiclient.PathImportResume, aiclient.File{Name: f.Name, Reader: f.Reader()}, nil)
	if err != nil {
		s.proxyError(w, "import-resume", err)
		return
	}
	s.forward(w, resp)
}

func (s *Server) handleProxyHealth(w http.ResponseWriter, r *http.Request) {
	payload, err := s.ai.Health(r.Context())
	if err != nil {
		log.Printf("[proxy] health check failed: %v", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status":       "unhealthy",
			"error":        "AI service is not running",
			"aiServiceUrl": s.ai.BaseURL(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// forward writes a backend response unchanged.
func (s *Server) forward(w http.ResponseWriter, resp *aiclient.Response) {
	ct := resp.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		log.Printf("[proxy] failed to write response: %v", err)
	}
}

// proxyError reports a failure to reach the backend at all.
func (s *Server) proxyError(w http.ResponseWriter, op string, err error) {
	log.Printf("[proxy] %s error: %v", op, err)

	var unreachable *aiclient.UnreachableError
	if errors.As(err, &unreachable) {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "AI service is not running",
			"message": "Please start the Python AI service",
		})
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}
