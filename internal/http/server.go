package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"expensetracker/internal/cache"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
	appweb "expensetracker/web"
)

// CategoryCookie remembers the last chosen category between page loads.
const CategoryCookie = "ledger_category"

type Server struct {
	http.Server
	ledger      *ledger.Ledger
	templates   *template.Template
	rateLimiter *rateLimiter
	charts      *cache.LRUCache[[]byte]
	currency    string
	logger      *log.Logger

	shutdownOnce sync.Once
}

type Option func(*Server)

func WithCurrencySymbol(symbol string) Option {
	return func(s *Server) {
		if symbol != "" {
			s.currency = symbol
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger.WithComponent(log.ComponentHTTP)
		}
	}
}

// WithRateLimit sets the per-IP budget of mutating requests per minute.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		s.rateLimiter.stop()
		s.rateLimiter = newRateLimiter(perMinute)
	}
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, l *ledger.Ledger, opts ...Option) *Server {
	s := &Server{
		ledger:      l,
		rateLimiter: newRateLimiter(defaultRateLimit),
		charts:      cache.NewLRUCache[[]byte](chartCacheSize, chartCacheTTL),
		currency:    core.DefaultCurrencySymbol,
		logger:      log.Discard().WithComponent(log.ComponentHTTP),
	}
	for _, opt := range opts {
		opt(s)
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(log.Middleware(s.logger))
	r.Use(log.RequestIDMiddleware(requestIDFromRequest))
	r.Use(requestLogger)
	r.Use(securityHeaders)
	r.Use(s.rateLimit)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Handle("/static/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/", s.handleIndex)
	r.Post("/expenses", s.handleCreateExpense)
	r.Post("/expenses/{id}/delete", s.handleDeleteExpense)
	r.Delete("/expenses/{id}", s.handleDeleteExpense)
	r.Get("/ui/ledger", s.handleLedgerPartial)
	r.Get("/charts/categories.png", s.handleCategoryChart)

	r.Route("/api", func(r chi.Router) {
		r.Get("/expenses", s.apiListExpenses)
		r.Post("/expenses", s.apiCreateExpense)
		r.Get("/expenses/{id}", s.apiGetExpense)
		r.Delete("/expenses/{id}", s.apiDeleteExpense)
		r.Get("/summary", s.apiSummary)
		r.Get("/categories", s.apiCategories)
	})

	return r
}

// Shutdown stops the rate limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady checks that the backing store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := s.ledger.Ping(ctx); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
