package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/acquisition"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/cleaning"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/config"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/db"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/feedback"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/fetch"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/llm"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/pipeline"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/resume"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/scoring"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/scrape"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/server/middleware"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/server/ratelimit"
)

// Analyzer runs one complete analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) (*pipeline.Result, *pipeline.UserError)
}

// UserStore persists and looks up accounts.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// HistoryReader serves a user's saved analyses and dashboard aggregates.
type HistoryReader interface {
	ListAnalyses(ctx context.Context, userID uuid.UUID, limit int) ([]db.Analysis, error)
	HistoryStats(ctx context.Context, userID uuid.UUID) (*db.Stats, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	llmClient   llm.Client
	users       UserStore
	history     HistoryReader
	analyzer    Analyzer
	previewer   pipeline.Acquirer
	passwords   *config.PasswordConfig
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	log         *zap.Logger
}

// New creates a fully wired server: database, generative client, acquisition
// pipeline, auth services, and routes.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	var client llm.Client
	if cfg.APIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = gemini
	} else {
		log.Warn("GEMINI_API_KEY not set, AI analysis disabled")
	}

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	fetchOpts := &fetch.Options{Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second}
	var refiner cleaning.Refiner
	if client != nil {
		refiner = llm.NewDescriptionRefiner(client, log)
	}
	normalizer := cleaning.NewNormalizer(refiner, log)
	resolver := acquisition.NewResolver(scrape.NewLinkedIn(fetchOpts, log), normalizer)

	generator := feedback.NewGenerator(client, log)
	controller := pipeline.NewController(
		resolver,
		resume.Extractor{},
		scoring.Engine{},
		scoring.Engine{},
		generator,
		generator,
		database,
		log,
	)

	s := &Server{
		db:         database,
		llmClient:  client,
		users:      database,
		history:    database,
		analyzer:   controller,
		previewer:  resolver,
		passwords:  passwords,
		jwtService: NewJWTService(jwtConfig),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			Enabled:   true,
			PerMinute: cfg.RateLimitPerMinute,
			Burst:     cfg.RateLimitBurst,
		}),
		log: log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // analysis requests include LLM calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	mux.Handle("POST /preview", authed(http.HandlerFunc(s.handlePreview)))
	mux.Handle("POST /analyze", authed(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("GET /history", authed(http.HandlerFunc(s.handleHistory)))
	mux.Handle("GET /dashboard", authed(http.HandlerFunc(s.handleDashboard)))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.db.Close()

	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceeded their request budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(clientID(r)) {
			s.errorResponse(w, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// clientID identifies a client for rate limiting by its IP address.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
