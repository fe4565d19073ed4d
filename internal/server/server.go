// Package server provides the HTTP API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/lifecycle"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 10 << 20

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	store           *store.Store
	registry        *rendering.Registry
	guard           *draft.Guard
	ai              *aiclient.Client
	exporter        *export.Exporter
	saves           SaveStatus
	analysis        *lifecycle.Tracker[types.AnalysisResult]
	imports         *lifecycle.Tracker[PendingImport]
	rateLimiter     *ratelimit.Limiter
	validate        *validator.Validate
	allowedOrigins  []string
	shutdownTimeout time.Duration
	now             func() time.Time
}

// Config holds server configuration
type Config struct {
	Addr            string
	AllowedOrigins  []string
	AITimeout       time.Duration
	ShutdownTimeout time.Duration
	// RateLimit nil disables rate limiting.
	RateLimit *ratelimit.Config
}

// SaveStatus reports the outcome of background persistence.
type SaveStatus interface {
	LastSaved() (time.Time, bool)
	LastError() error
}

// Deps are the collaborators the server routes to. Saves is optional.
type Deps struct {
	Store    *store.Store
	Registry *rendering.Registry
	AI       *aiclient.Client
	Exporter *export.Exporter
	Saves    SaveStatus
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Registry == nil || deps.AI == nil {
		return nil, fmt.Errorf("server: store, registry and ai client are required")
	}
	if deps.Exporter == nil {
		deps.Exporter = export.NewExporter(nil, false)
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = aiclient.DefaultTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		store:    deps.Store,
		registry: deps.Registry,
		guard:    draft.NewGuard(deps.Store),
		ai:       deps.AI,
		exporter: deps.Exporter,
		saves:    deps.Saves,
		analysis: lifecycle.NewTracker("analysis", cfg.AITimeout,
			lifecycle.WithErrorText[types.AnalysisResult](func(err error) string {
				return aiclient.DisplayMessage(err, aiclient.FallbackAnalyze)
			})),
		imports: lifecycle.NewTracker("import", cfg.AITimeout,
			lifecycle.WithErrorText[PendingImport](func(err error) string {
				return aiclient.DisplayMessage(err, aiclient.FallbackImport)
			})),
		validate:        newValidator(),
		allowedOrigins:  cfg.AllowedOrigins,
		shutdownTimeout: cfg.ShutdownTimeout,
		now:             time.Now,
	}
	if cfg.RateLimit != nil {
		s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	// AI backend pass-through
	mux.HandleFunc("POST /api/ai/analyze", s.handleProxyAnalyze)
	mux.HandleFunc("POST /api/ai/analyze-pdf", s.handleProxyAnalyzePDF)
	mux.HandleFunc("POST /api/ai/import-resume", s.handleProxyImportResume)
	mux.HandleFunc("GET /api/ai/health", s.handleProxyHealth)

	// Tracked analysis and import
	mux.HandleFunc("POST /api/analysis", s.handleStartAnalysis)
	mux.HandleFunc("GET /api/analysis", s.handleGetAnalysis)
	mux.HandleFunc("DELETE /api/analysis", s.handleCancelAnalysis)
	mux.HandleFunc("GET /api/analysis/report", s.handleAnalysisReport)
	mux.HandleFunc("POST /api/import", s.handleStartImport)
	mux.HandleFunc("GET /api/import", s.handleGetImport)
	mux.HandleFunc("POST /api/import/confirm", s.handleConfirmImport)
	mux.HandleFunc("DELETE /api/import", s.handleCancelImport)

	// Resume document
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume", s.handleLoadResume)
	mux.HandleFunc("DELETE /api/resume", s.handleResetResume)
	mux.HandleFunc("POST /api/resume/clear", s.handleClearResume)
	mux.HandleFunc("GET /api/resume/events", s.handleResumeEvents)
	mux.HandleFunc("PATCH /api/resume/personal-info", s.handleUpdatePersonalInfo)
	for _, section := range entrySections {
		mux.HandleFunc("POST /api/resume/"+section, s.handleAddEntry(section))
		mux.HandleFunc("PUT /api/resume/"+section+"/{id}", s.handleUpdateEntry(section))
		mux.HandleFunc("DELETE /api/resume/"+section+"/{id}", s.handleRemoveEntry(section))
	}
	mux.HandleFunc("PUT /api/resume/skills/{category}", s.handleUpdateSkills)
	mux.HandleFunc("POST /api/resume/skills/{category}", s.handleAddSkill)
	mux.HandleFunc("DELETE /api/resume/skills/{category}/{value}", s.handleRemoveSkill)
	mux.HandleFunc("PUT /api/resume/template", s.handleSetTemplate)
	mux.HandleFunc("PATCH /api/resume/formatting", s.handleUpdateFormatting)
	mux.HandleFunc("PUT /api/resume/section-order", s.handleSetSectionOrder)
	mux.HandleFunc("POST /api/resume/clean", s.handleMarkClean)
	mux.HandleFunc("POST /api/resume/dirty", s.handleMarkDirty)

	// Draft protection
	mux.HandleFunc("GET /api/draft", s.handleDraftStatus)
	mux.HandleFunc("POST /api/draft/trigger", s.handleDraftTrigger)
	mux.HandleFunc("POST /api/draft/decision", s.handleDraftDecision)

	// Templates, preview and PDF
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /api/preview", s.handlePreview)
	mux.HandleFunc("GET /api/resume/pdf", s.handleResumePDF)
	mux.HandleFunc("POST /api/pdf/export", s.handleExportPDF)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AITimeout + 30*time.Second, // proxied AI calls may take the full timeout
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown cancels in-flight AI requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.analysis.Shutdown()
	s.imports.Shutdown()

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.allowedOrigins) == 0 || slices.Contains(s.allowedOrigins, "*"):
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d completed in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// handleRoot lists the main endpoints.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Resume Builder Backend API",
		"endpoints": []string{
			"/api/ai/health", "/api/ai/analyze", "/api/ai/analyze-pdf", "/api/ai/import-resume",
			"/api/analysis", "/api/import", "/api/resume", "/api/draft",
			"/api/templates", "/api/preview", "/api/resume/pdf", "/api/pdf/export",
		},
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"service":      "resume-builder-backend",
		"aiServiceUrl": s.ai.BaseURL(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// extractClientID extracts the client identifier from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
