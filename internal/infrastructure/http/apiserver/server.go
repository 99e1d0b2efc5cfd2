// Package apiserver assembles the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrywizard/v2/internal/application/ai"
	"github.com/pantrywizard/v2/internal/infrastructure/config"
	"github.com/pantrywizard/v2/internal/infrastructure/http/handlers"
	"github.com/pantrywizard/v2/internal/infrastructure/http/middleware"
	"github.com/pantrywizard/v2/internal/infrastructure/monitoring"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/internal/ports/outbound"
)

// APIServer serves the pantry and recipe API
type APIServer struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *chi.Mux

	users   inbound.UserService
	pantry  inbound.PantryService
	recipes inbound.RecipeService
	history inbound.HistoryService
	tokens  outbound.TokenService
	ai      *ai.Service
	cache   outbound.CacheRepository
	db      *gorm.DB
}

// NewAPIServer creates the API server and wires its routes
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	users inbound.UserService,
	pantry inbound.PantryService,
	recipes inbound.RecipeService,
	history inbound.HistoryService,
	tokens outbound.TokenService,
	aiService *ai.Service,
	cache outbound.CacheRepository,
	db *gorm.DB,
) *APIServer {
	s := &APIServer{
		config:  cfg,
		logger:  log.Named("apiserver"),
		users:   users,
		pantry:  pantry,
		recipes: recipes,
		history: history,
		tokens:  tokens,
		ai:      aiService,
		cache:   cache,
		db:      db,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.Server.EnableCompression {
		r.Use(compressor())
	}
	if s.config.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.JSONOnly())

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)
		r.Get("/health/ready", s.handleReady)
		if s.config.Monitoring.EnableMetrics {
			r.Method(http.MethodGet, "/metrics", monitoring.Handler())
		}
	})

	r.Route("/api", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

func (s *APIServer) setupAPIRoutes(r chi.Router) {
	authH := handlers.NewAuthHandlers(s.users, s.logger)
	pantryH := handlers.NewPantryHandlers(s.pantry, s.logger)
	recipeH := handlers.NewRecipeHandlers(s.recipes, s.logger)
	historyH := handlers.NewHistoryHandlers(s.history, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokens))
			r.Get("/profile", authH.Profile)
		})
	})

	r.Route("/pantry", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		r.Use(middleware.Authenticate(s.tokens))
		r.Get("/", pantryH.List)
		r.Post("/", pantryH.Add)
		r.Put("/{id}", pantryH.Update)
		r.Delete("/{id}", pantryH.Remove)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens))
		r.With(chimiddleware.Timeout(s.config.Server.RequestTimeout)).
			Post("/save", recipeH.Save)

		// Generation endpoints call out to the model, so they run under
		// the backend's deadline rather than the request timeout, and get
		// their own per-user throttle.
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(generationTimeout(s.config)))
			r.Use(middleware.RateLimit(s.config.RateLimit))
			r.Post("/generate", recipeH.Generate)
			r.Get("/daily", recipeH.Daily)
		})
	})

	r.Route("/history", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		r.Use(middleware.Authenticate(s.tokens))
		r.Get("/", historyH.List)
		r.Get("/reports/weekly", historyH.WeeklyReport)
	})
}

// generationTimeout returns the request deadline for the generation
// endpoints: the slowest configured backend timeout plus headroom for the
// retry loop and image generation, never below the plain request timeout.
func generationTimeout(cfg *config.Config) time.Duration {
	backend := cfg.AI.OllamaTimeout
	if cfg.AI.APITimeout > backend {
		backend = cfg.AI.APITimeout
	}

	timeout := backend + 15*time.Second
	if cfg.Server.RequestTimeout > timeout {
		timeout = cfg.Server.RequestTimeout
	}
	return timeout
}

// compressor builds the response compressor with a brotli encoder next to
// the default gzip/deflate ones
func compressor() func(next http.Handler) http.Handler {
	c := chimiddleware.NewCompressor(5, "application/json")
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return c.Handler
}

// Start begins serving. It blocks until the listener closes.
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, letting in-flight requests finish
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"service":%q,"version":%q,"api":"/api","health":"/health"}`,
		s.config.App.Name, s.config.App.Version)
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"healthy"}`)
}

// handleReady reports readiness of the database, cache and generation
// backend. Any failing check turns the response into a 503; individual
// statuses are always included so operators can see which dependency is
// down.
func (s *APIServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
		"ai":       "ok",
	}
	healthy := true

	if err := s.pingDatabase(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := s.cache.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		healthy = false
	}
	if err := s.ai.HealthCheck(ctx); err != nil {
		checks["ai"] = err.Error()
		healthy = false
	}

	status := "ready"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"status":%q,"checks":{"database":%q,"cache":%q,"ai":%q}}`,
		status, checks["database"], checks["cache"], checks["ai"])
}

func (s *APIServer) pingDatabase(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
