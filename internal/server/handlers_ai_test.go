package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/testutil"
)

func TestProxyAnalyze_PassesStatusAndBody(t *testing.T) {
	var gotBody []byte
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"bad input"}`))
	})
	env := newTestEnv(t, backend)

	w := env.do(t, http.MethodPost, "/api/ai/analyze", `{"resume_data":{},"job_description":"go"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"bad input"}`, w.Body.String())
	assert.JSONEq(t, `{"resume_data":{},"job_description":"go"}`, string(gotBody))
}

func TestProxyAnalyze_Unreachable(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/ai/analyze", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "AI service is not running", body["error"])
	assert.Equal(t, "Please start the Python AI service", body["message"])
}

func TestProxyAnalyzePDF_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.doMultipart(t, "/api/ai/analyze-pdf", "", "", nil, map[string]string{"job_description": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No PDF file uploaded", errorText(t, w))

	w = env.doMultipart(t, "/api/ai/analyze-pdf", "notes.txt", "text/plain", []byte("hello"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please upload a PDF file", errorText(t, w))
}

func TestProxyAnalyzePDF_ForwardsFileAndJobDescription(t *testing.T) {
	pdf := testutil.MinimalPDF(1)
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-pdf", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Senior Go engineer", r.FormValue("job_description"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "resume.pdf", hdr.Filename)
		assert.Equal(t, pdf, data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ats_score":{"overall":80}}`))
	})
	env := newTestEnv(t, backend)

	w := env.doMultipart(t, "/api/ai/analyze-pdf", "resume.pdf", "application/pdf", pdf,
		map[string]string{"job_description": "Senior Go engineer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ats_score":{"overall":80}}`, w.Body.String())
}

func TestProxyImportResume_Forwards(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/import-resume", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"personalInfo":{"fullName":"Jane"}}}`))
	})
	env := newTestEnv(t, backend)

	w := env.doMultipart(t, "/api/ai/import-resume", "cv.pdf", "application/pdf", testutil.MinimalPDF(2), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"personalInfo":{"fullName":"Jane"}}}`, w.Body.String())
}

func TestProxyImportResume_ForwardsPaddedPDF(t *testing.T) {
	padded := append(testutil.MinimalPDF(1), bytes.Repeat([]byte("\n"), 2048)...)
	var got []byte
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		got, _ = io.ReadAll(f)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})
	env := newTestEnv(t, backend)

	w := env.doMultipart(t, "/api/ai/import-resume", "cv.pdf", "application/pdf", padded, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, padded, got)
}

func TestProxyHealth(t *testing.T) {
	t.Run("healthy backend passes through", func(t *testing.T) {
		backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"healthy","model":"local"}`))
		})
		env := newTestEnv(t, backend)

		w := env.do(t, http.MethodGet, "/api/ai/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","model":"local"}`, w.Body.String())
	})

	t.Run("unreachable backend is unhealthy", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := env.do(t, http.MethodGet, "/api/ai/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody[map[string]string](t, w)
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "AI service is not running", body["error"])
		assert.Equal(t, unreachableURL, body["aiServiceUrl"])
	})
}

func TestHealthAndRoot(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decodeBody[map[string]string](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "resume-builder-backend", health["service"])
	assert.Equal(t, unreachableURL, health["aiServiceUrl"])

	w = env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var root struct {
		Message   string   `json:"message"`
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "Resume Builder Backend API", root.Message)
	assert.Contains(t, root.Endpoints, "/api/ai/analyze")

	w = env.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
