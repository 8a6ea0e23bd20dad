package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/job-requirements-extractor/internal/analysis"
	"github.com/jonathan/job-requirements-extractor/internal/db"
	"github.com/jonathan/job-requirements-extractor/internal/logging"
	"github.com/jonathan/job-requirements-extractor/internal/server/middleware"
	"github.com/jonathan/job-requirements-extractor/internal/server/ratelimit"
)

// DefaultMaxBodyBytes caps request bodies
const DefaultMaxBodyBytes int64 = 1 << 20

const shutdownTimeout = 30 * time.Second

// Analyzer runs analyses for the API. *analysis.Service satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, text, source string) (*analysis.Result, error)
	AnalyzeURL(ctx context.Context, url string, useBrowser bool) (*analysis.Result, error)
}

// Store serves stored analyses. *db.DB satisfies it.
type Store interface {
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.Analysis, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]db.AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// Config holds server configuration
type Config struct {
	Port int
	// MaxTextLength rejects longer inline text; 0 disables the check
	MaxTextLength int
	MaxBodyBytes  int64
	// RateLimit nil selects ratelimit.LoadConfig()
	RateLimit *ratelimit.Config
	Logger    logging.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	analyzer      Analyzer
	store         Store
	rateLimiter   *ratelimit.Limiter
	logger        logging.Logger
	validate      *validator.Validate
	maxTextLength int
	maxBodyBytes  int64
}

// New creates a server. store may be nil, in which case the history
// endpoints answer 503.
func New(cfg Config, analyzer Analyzer, store Store) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	s := &Server{
		analyzer:      analyzer,
		store:         store,
		rateLimiter:   ratelimit.NewLimiter(rlConfig),
		logger:        logger,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		maxTextLength: cfg.MaxTextLength,
		maxBodyBytes:  maxBody,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // URL analysis may render with a browser
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in request ID, logging, CORS
// and rate limiting middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("DELETE /analyses/{id}", s.handleDeleteAnalysis)
	mux.HandleFunc("GET /health", s.handleHealth)

	var h http.Handler = mux
	h = s.withRateLimit(h)
	h = middleware.CORS(h)
	h = middleware.Logging(s.logger)(h)
	h = middleware.RequestID(h)
	return h
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit rejects requests over the per-client limits with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP without port
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	s.jsonResponse(w, r, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.FromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

// errorResponse writes {"error": message} with the status mapped from err
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		message = "internal server error"
	}
	s.jsonResponse(w, r, status, map[string]string{"error": message})
}
