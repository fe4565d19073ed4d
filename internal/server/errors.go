package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/lifecycle"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/upload"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNothingToApply is returned when confirming an import that has not
// produced a document.
var ErrNothingToApply = errors.New("no imported resume to apply")

// ErrEmptyResume is returned when analysing a document with no content.
var ErrEmptyResume = errors.New("add some content to your resume before analysing it")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		indexErr      *store.IndexError
		notFoundErr   *store.NotFoundError
		categoryErr   *store.CategoryError
		uploadErr     *upload.Error
		unreachable   *aiclient.UnreachableError
		backendErr    *aiclient.BackendError
		invalidResp   *aiclient.InvalidResponseError
		schemaErr     *schemas.ValidationError
		disabledErr   *export.DisabledError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &categoryErr):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrHTMLRequired), errors.Is(err, ErrEmptyResume):
		return http.StatusBadRequest
	case errors.As(err, &indexErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &uploadErr):
		return uploadErr.Status
	case errors.Is(err, draft.ErrNoPendingDecision), errors.Is(err, draft.ErrDecisionPending),
		errors.Is(err, lifecycle.ErrInFlight), errors.Is(err, ErrNothingToApply):
		return http.StatusConflict
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unreachable):
		return http.StatusServiceUnavailable
	case errors.As(err, &backendErr):
		if backendErr.Status >= 400 {
			return backendErr.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &invalidResp):
		return http.StatusBadGateway
	case errors.As(err, &disabledErr):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the client-facing text for err.
func errorMessage(err error) string {
	var (
		validationErr *ErrValidation
		uploadErr     *upload.Error
		schemaErr     *schemas.ValidationError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &uploadErr):
		return uploadErr.Message
	case errors.As(err, &schemaErr):
		return "Imported resume is invalid: " + schemaErr.First()
	}
	return aiclient.DisplayMessage(err, err.Error())
}

// writeError maps err to a status and writes {"error": message}.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), errorMessage(err))
}
