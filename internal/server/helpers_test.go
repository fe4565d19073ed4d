package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
)

// unreachableURL has nothing listening on it.
const unreachableURL = "http://127.0.0.1:1"

type fakePrinter struct {
	pdf  []byte
	err  error
	html string
}

func (f *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return f.pdf, f.err
}

type testEnv struct {
	srv     *Server
	store   *store.Store
	printer *fakePrinter
}

type envOption func(*Config, *Deps)

func withExporter(e *export.Exporter) envOption {
	return func(_ *Config, d *Deps) { d.Exporter = e }
}

// withSaves builds the save status from the deps, so it can subscribe to the
// test store.
func withSaves(fn func(*Deps) SaveStatus) envOption {
	return func(_ *Config, d *Deps) { d.Saves = fn(d) }
}

func withConfig(fn func(*Config)) envOption {
	return func(c *Config, _ *Deps) { fn(c) }
}

// newTestEnv builds a server against backend. A nil backend points the AI
// client at a closed port.
func newTestEnv(t *testing.T, backend http.Handler, opts ...envOption) *testEnv {
	t.Helper()

	aiURL := unreachableURL
	if backend != nil {
		ts := httptest.NewServer(backend)
		t.Cleanup(ts.Close)
		aiURL = ts.URL
	}

	reg, err := rendering.Builtin()
	require.NoError(t, err)
	st := store.New(store.WithTemplateResolver(reg.ResolveID))
	printer := &fakePrinter{pdf: []byte("%PDF-1.4 fake")}

	cfg := Config{Addr: ":0", AITimeout: 5 * time.Second}
	deps := Deps{
		Store:    st,
		Registry: reg,
		AI:       aiclient.New(aiURL, 5*time.Second),
		Exporter: export.NewExporter(printer, true),
	}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}

	srv, err := New(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(func() {
		srv.analysis.Shutdown()
		srv.imports.Shutdown()
		if srv.rateLimiter != nil {
			srv.rateLimiter.Stop()
		}
	})
	return &testEnv{srv: srv, store: st, printer: printer}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

// doMultipart posts a file part plus extra fields. An empty fileName
// omits the file part.
func (e *testEnv) doMultipart(t *testing.T, path, fileName, contentType string, data []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorText(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]any](t, w)["error"].(string)
}
