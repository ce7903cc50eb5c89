// Package http provides the HTTP transport for cart validation and parsing.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vvorobets/cart-parser/internal/cartparser"
	"github.com/vvorobets/cart-parser/internal/config"
	"github.com/vvorobets/cart-parser/internal/report"
	"github.com/vvorobets/cart-parser/internal/types"
	"github.com/vvorobets/cart-parser/internal/validation"
)

// Server is the HTTP server for the cart parser.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// ListenAndServe starts the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/parse", s.handleParse)
	})
}

// Handlers

type validateResponse struct {
	Valid  bool                         `json:"valid"`
	Errors []validation.ErrorDescriptor `json:"errors"`
}

type parseResponse struct {
	Items          []types.Item `json:"items"`
	Total          float64      `json:"total"`
	FormattedTotal string       `json:"formatted_total"`
	Currency       string       `json:"currency"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readBody(w, r)
	if !ok {
		return
	}

	errs := validation.Validate(text)
	if errs == nil {
		errs = []validation.ErrorDescriptor{}
	}

	s.writeJSON(w, http.StatusOK, validateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readBody(w, r)
	if !ok {
		return
	}

	cart, err := cartparser.ParseText(text)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, parseResponse{
		Items:          cart.Items,
		Total:          cart.Total,
		FormattedTotal: report.FormatMoney(cart.Total, s.cfg.MoneyPrecision()),
		Currency:       s.cfg.Report.Currency,
	})
}

// Response helpers

type errorResponse struct {
	Error  string                       `json:"error"`
	Code   string                       `json:"code,omitempty"`
	Errors []validation.ErrorDescriptor `json:"errors,omitempty"`
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "request body too large",
				Code:  "BODY_TOO_LARGE",
			})
			return "", false
		}
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "failed to read request body",
			Code:  "INVALID_INPUT",
		})
		return "", false
	}
	return string(body), true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validationErr *cartparser.ValidationError
	if errors.As(err, &validationErr) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Code:   "VALIDATION_FAILED",
			Errors: validationErr.Errors,
		})
		return
	}

	s.logger.Error("unhandled error", slog.String("error", err.Error()))
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Code:  "INTERNAL_ERROR",
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
