// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/session"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8790"

	// MaxRequestBodySize is the maximum size for a request body (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// MaxMessageLength caps one chat message.
	MaxMessageLength = 100000
)

// ============================================================================
// SERVER
// ============================================================================

// Server exposes one Session over a JSON HTTP API.
type Server struct {
	addr      string
	version   string
	sess      *session.Session
	router    *http.ServeMux
	limiter   *RateLimiter
	logger    *log.Logger
	startTime time.Time

	server *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithLogger sets the request logger (default: log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server for sess. Zero values in cfg take the defaults.
func New(sess *session.Session, cfg config.ServerConfig, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 20
	}

	s := &Server{
		addr:      cfg.Addr,
		version:   "dev",
		sess:      sess,
		router:    http.NewServeMux(),
		limiter:   NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:    log.Default(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Ledger
	s.router.HandleFunc("GET /api/budget", s.handleGetBudget)
	s.router.HandleFunc("POST /api/budget/items", s.handleAddItem)
	s.router.HandleFunc("PUT /api/budget/items", s.handleReplaceItems)
	s.router.HandleFunc("PUT /api/budget/items/{id}", s.handleUpdateItem)
	s.router.HandleFunc("DELETE /api/budget/items/{id}", s.handleDeleteItem)
	s.router.HandleFunc("POST /api/categories", s.handleAddCategory)
	s.router.HandleFunc("POST /api/categories/{name}/subcategories", s.handleAddSubcategory)
	s.router.HandleFunc("GET /api/reports", s.handleReports)

	// Chat
	s.router.HandleFunc("POST /api/chat", s.handleChat)
	s.router.HandleFunc("GET /api/chat/messages", s.handleMessages)
	s.router.HandleFunc("GET /api/chat/pending", s.handlePending)
	s.router.HandleFunc("GET /api/templates", s.handleTemplates)

	// Schedule and settings
	s.router.HandleFunc("GET /api/schedule", s.handleGetSchedule)
	s.router.HandleFunc("POST /api/schedule", s.handleAddSchedule)
	s.router.HandleFunc("GET /api/settings", s.handleGetSettings)
	s.router.HandleFunc("PUT /api/settings", s.handlePutSettings)

	// Ollama
	s.router.HandleFunc("GET /api/models", s.handleModels)
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger),
		RateLimitMiddleware(s.limiter),
		BodyLimitMiddleware(MaxRequestBodySize),
	)(s.router)
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("SERVER_START | addr=%s version=%s", s.addr, s.version)
	return s.server.ListenAndServe()
}

// Run starts the server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	st := s.sess.GetStatus()
	log.Printf("SERVER_SHUTDOWN | items=%d messages=%d", st.Items, st.Messages)
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Message string       `json:"message"`
	Code    int          `json:"code"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RESPONSE_ENCODE_FAILED | error=%v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Message: message, Code: status}})
}

// writeFieldErrors writes a 400 listing the invalid fields.
func writeFieldErrors(w http.ResponseWriter, message string, fields []FieldError) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
		Message: message,
		Code:    http.StatusBadRequest,
		Fields:  fields,
	}})
}

// decodeJSON reads the request body into v. It writes the error response
// itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", tooLarge.Limit))
			return false
		}
		log.Printf("INVALID_REQUEST_BODY | path=%s error=%v", r.URL.Path, err)
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return false
	}
	return true
}
