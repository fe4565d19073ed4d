package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/analysis"
	"github.com/jonathan/resume-builder/internal/lifecycle"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/upload"
)

// PendingImport is a parsed document waiting for confirmation.
type PendingImport struct {
	Document types.ResumeDocument `json:"document"`
	FileName string               `json:"fileName"`
	Pages    int                  `json:"pages"`

	raw []byte
}

type analyzeRequest struct {
	JobDescription string `json:"job_description"`
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// ---------------------------------------------------------------------
// Analysis
// ---------------------------------------------------------------------

// handleStartAnalysis analyses the live document (JSON body) or an
// uploaded PDF (multipart body) in the background.
func (s *Server) handleStartAnalysis(w http.ResponseWriter, r *http.Request) {
	var run lifecycle.Func[types.AnalysisResult]

	if isMultipart(r) {
		f, err := upload.FromRequest(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		jd := r.FormValue("job_description")
		run = func(ctx context.Context) (types.AnalysisResult, error) {
			res, err := s.ai.AnalyzePDF(ctx, aiclient.File{Name: f.Name, Reader: f.Reader()}, jd)
			if err != nil {
				return types.AnalysisResult{}, err
			}
			return *res, nil
		}
	} else {
		var req analyzeRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		doc := s.store.State().Resume
		if !doc.HasContent() {
			s.writeError(w, ErrEmptyResume)
			return
		}
		run = func(ctx context.Context) (types.AnalysisResult, error) {
			res, err := s.ai.Analyze(ctx, doc, req.JobDescription)
			if err != nil {
				return types.AnalysisResult{}, err
			}
			return *res, nil
		}
	}

	snap, err := s.analysis.Begin(run)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, snap)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.analysis.Snapshot())
}

// handleCancelAnalysis cancels a pending analysis, or clears a finished one.
func (s *Server) handleCancelAnalysis(w http.ResponseWriter, _ *http.Request) {
	if !s.analysis.Cancel() {
		s.analysis.Reset()
	}
	s.jsonResponse(w, http.StatusOK, s.analysis.Snapshot())
}

func (s *Server) handleAnalysisReport(w http.ResponseWriter, _ *http.Request) {
	snap := s.analysis.Snapshot()
	if snap.Result == nil {
		s.errorResponse(w, http.StatusNotFound, "No analysis result available")
		return
	}

	now := s.now()
	report, err := analysis.FormatReport(*snap.Result, now)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", analysis.ReportFilename(now)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, report)
}

// ---------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------

func (s *Server) handleStartImport(w http.ResponseWriter, r *http.Request) {
	f, err := upload.FromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := s.imports.Begin(func(ctx context.Context) (PendingImport, error) {
		doc, raw, err := s.ai.ImportResume(ctx, aiclient.File{Name: f.Name, Reader: f.Reader()})
		if err != nil {
			return PendingImport{}, err
		}
		return PendingImport{Document: doc.Normalize(), FileName: f.Name, Pages: f.Pages, raw: raw}, nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, snap)
}

func (s *Server) handleGetImport(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.imports.Snapshot())
}

func (s *Server) handleConfirmImport(w http.ResponseWriter, _ *http.Request) {
	if err := s.applyImport(); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

func (s *Server) handleCancelImport(w http.ResponseWriter, _ *http.Request) {
	if !s.imports.Cancel() {
		s.imports.Reset()
	}
	s.jsonResponse(w, http.StatusOK, s.imports.Snapshot())
}

// hasPendingImport reports whether a parsed document is ready to apply.
func (s *Server) hasPendingImport() bool {
	snap := s.imports.Snapshot()
	return snap.Status == lifecycle.StatusSucceeded && snap.Result != nil
}

// applyImport validates the pending document and loads it into the store.
func (s *Server) applyImport() error {
	snap := s.imports.Snapshot()
	if snap.Status != lifecycle.StatusSucceeded || snap.Result == nil {
		return ErrNothingToApply
	}
	if err := schemas.ValidateResume(snap.Result.raw); err != nil {
		return err
	}
	if _, err := s.store.Dispatch(store.LoadResume{Document: snap.Result.Document}); err != nil {
		return err
	}
	s.imports.Reset()
	log.Printf("[import] applied %s (%d pages)", snap.Result.FileName, snap.Result.Pages)
	return nil
}
