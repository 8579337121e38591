package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fbfinance/internal/accounts"
	"fbfinance/internal/advice"
	"fbfinance/internal/log"
	"fbfinance/internal/services"
	"fbfinance/internal/session"
)

// Server exposes the JSON API. It embeds http.Server so callers can use
// ListenAndServe directly.
type Server struct {
	http.Server

	directory *accounts.Directory
	sessions  *session.Manager
	finance   *services.FinanceService
	adviser   advice.Adviser

	rateLimiter *rateLimiter
	metrics     *securityMetrics
	logger      *log.Logger

	// adviceInFlight guards the single-slot advice pipeline: a second
	// request while one is pending gets a 409.
	adviceInFlight atomic.Bool

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, d *accounts.Directory, sm *session.Manager, fs *services.FinanceService, adv advice.Adviser, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           log.Middleware(logger)(mux),
			ReadHeaderTimeout: 5 * time.Second,
		},
		directory:   d,
		sessions:    sm,
		finance:     fs,
		adviser:     adv,
		rateLimiter: newRateLimiter(),
		metrics:     &securityMetrics{},
		logger:      logger.WithComponent(log.ComponentHTTP),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("POST /api/register", s.withSecurityHeaders(s.handleRegister))
	mux.HandleFunc("POST /api/login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("POST /api/logout", s.withSecurityHeaders(s.handleLogout))
	mux.HandleFunc("GET /api/session", s.withSecurityHeaders(s.handleSession))

	mux.HandleFunc("GET /api/state", s.withSecurityHeaders(s.handleState))
	mux.HandleFunc("POST /api/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withSecurityHeaders(s.handleDeleteTransaction))
	mux.HandleFunc("POST /api/goals", s.withSecurityHeaders(s.handleCreateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withSecurityHeaders(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/deposit", s.withSecurityHeaders(s.handleGoalDeposit))
	mux.HandleFunc("PUT /api/profile", s.withSecurityHeaders(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/theme", s.withSecurityHeaders(s.handleSetTheme))
	mux.HandleFunc("GET /api/dashboard", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("POST /api/advice", s.withSecurityHeaders(s.handleAdvice))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		// Mutating requests share one per-IP budget.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP, s.metrics) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "muitas requisições, tente novamente em instantes")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data: https://api.dicebear.com; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The registry read exercises the backing store end to end.
	if _, err := s.directory.Count(ctx); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Readiness check failed", log.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
