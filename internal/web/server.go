// Package web provides the HTTP server and handlers for the paste-to-CSV UI.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/issuecsv/internal/config"
	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/JonMunkholm/issuecsv/internal/prefs"
	appmw "github.com/JonMunkholm/issuecsv/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the CSV generator.
type Server struct {
	cfg     *config.Config
	service *core.Service
	prefs   prefs.Store
	limiter *core.Limiter
	router  *chi.Mux
	server  *http.Server

	stopLimiters context.CancelFunc
}

// NewServer creates a new Server instance. A nil store keeps theme
// preferences in memory.
func NewServer(cfg *config.Config, service *core.Service, store prefs.Store) *Server {
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	s := &Server{
		cfg:     cfg,
		service: service,
		prefs:   store,
		limiter: core.NewLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWaitTime),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(appmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(appmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopLimiters = cancel

	general := s.newLimiterMiddleware(ctx, s.cfg.Rate.RequestsPerMinute)
	paste := s.newLimiterMiddleware(ctx, s.cfg.Rate.PasteLimit)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(general)

		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

		// Pages
		r.Get("/", s.handleIndex)
		r.Get("/t/{template}", s.handleTemplatePage)

		r.Route("/api", func(r chi.Router) {
			r.Use(appmw.APIKeyAuth(&s.cfg.Security))

			r.Get("/templates", s.handleListTemplates)

			r.Get("/theme", s.handleGetTheme)
			r.Put("/theme", s.handlePutTheme)

			r.Route("/{template}", func(r chi.Router) {
				// Parsing and generating share the stricter budget
				r.With(paste).Post("/paste", s.handlePaste)
				r.With(paste).Post("/emails", s.handleEmails)
				r.With(paste).Post("/process", s.handleProcess)
				r.Post("/clear", s.handleClear)

				r.Get("/state", s.handleState)
				r.Get("/preview", s.handlePreview)
				r.Get("/files", s.handleFiles)
				r.Get("/download/{part}", s.handleDownload)
				r.Get("/download.zip", s.handleDownloadZip)
				r.Get("/copy", s.handleCopy)
			})
		})
	})
}

// newLimiterMiddleware returns a per-IP rate limit middleware, or a
// pass-through when rate limiting is disabled.
func (s *Server) newLimiterMiddleware(ctx context.Context, perMinute int) func(http.Handler) http.Handler {
	if !s.cfg.Rate.Enabled || perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	rl := newRateLimiter(perMinute, time.Minute)
	go rl.cleanup(ctx, time.Minute)
	return rl.middleware
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopLimiters != nil {
		s.stopLimiters()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Limiter returns the work limiter so shutdown can wait for in-flight pastes.
func (s *Server) Limiter() *core.Limiter {
	return s.limiter
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
