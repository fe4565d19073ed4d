package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/draft"
)

// Actions that discard the current document and therefore go through the
// draft guard.
const (
	draftActionReset       = "reset"
	draftActionClear       = "clear"
	draftActionApplyImport = "apply-import"
)

type draftTriggerRequest struct {
	Action string `json:"action"`
}

type draftDecisionRequest struct {
	Decision string `json:"decision"`
}

func (s *Server) draftAction(name string) (draft.Action, error) {
	switch name {
	case draftActionReset:
		return draft.Action{Name: name, Run: func() error { s.store.ResetResume(); return nil }}, nil
	case draftActionClear:
		return draft.Action{Name: name, Run: func() error { s.store.ClearResume(); return nil }}, nil
	case draftActionApplyImport:
		if !s.hasPendingImport() {
			return draft.Action{}, ErrNothingToApply
		}
		return draft.Action{Name: name, Run: s.applyImport}, nil
	}
	return draft.Action{}, &ErrValidation{Field: "action", Message: fmt.Sprintf("unknown action %q", name)}
}

// draftStatusResponse adds the background save outcome to the guard status.
type draftStatusResponse struct {
	draft.Status
	LastSaved *time.Time `json:"lastSaved,omitempty"`
	SaveError string     `json:"saveError,omitempty"`
}

func (s *Server) handleDraftStatus(w http.ResponseWriter, _ *http.Request) {
	resp := draftStatusResponse{Status: s.guard.Status()}
	if s.saves != nil {
		if at, ok := s.saves.LastSaved(); ok {
			resp.LastSaved = &at
		}
		if err := s.saves.LastError(); err != nil {
			resp.SaveError = err.Error()
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDraftTrigger runs the action now when the document is clean and
// answers 200; otherwise it opens the confirmation prompt and answers 202.
func (s *Server) handleDraftTrigger(w http.ResponseWriter, r *http.Request) {
	var req draftTriggerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	action, err := s.draftAction(req.Action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.guard.Trigger(action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	status := http.StatusOK
	if out.Status.State == draft.StatePendingDecision {
		status = http.StatusAccepted
	}
	s.jsonResponse(w, status, out)
}

func (s *Server) handleDraftDecision(w http.ResponseWriter, r *http.Request) {
	var req draftDecisionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	d, err := draft.ParseDecision(req.Decision)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "decision", Message: err.Error()})
		return
	}
	out, err := s.guard.Decide(d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}
