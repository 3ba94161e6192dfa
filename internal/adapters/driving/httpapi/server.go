package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// maxBodyBytes bounds request bodies; meal photos arrive base64 encoded.
const maxBodyBytes = 16 << 20

// Default server settings.
const (
	DefaultRequestTimeout  = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// ErrMissingNutritionService is returned when the nutrition service is not provided.
var ErrMissingNutritionService = errors.New("httpapi: nutrition service is required")

// Services aggregates the driving ports served over HTTP.
// Only Nutrition is required; routes for nil services answer 501.
type Services struct {
	Nutrition driving.NutritionService
	Catalog   driving.CatalogService
	Barcode   driving.BarcodeService
	Workout   driving.WorkoutService
	Goals     driving.GoalService
}

// Config holds HTTP server configuration.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string

	// AllowedOrigins lists CORS origins.
	AllowedOrigins []string

	// RequestTimeout bounds a single request, oracle calls included.
	RequestTimeout time.Duration

	// Version is reported by /health.
	Version string
}

// Server is the HTTP API server.
type Server struct {
	cfg     Config
	handler http.Handler
}

// NewServer builds the router for the given services.
func NewServer(services *Services, cfg Config) (*Server, error) {
	if services == nil || services.Nutrition == nil {
		return nil, ErrMissingNutritionService
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &Server{cfg: cfg, handler: newRouter(&handlers{services: services, version: cfg.Version}, cfg)}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func newRouter(h *handlers, cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analysis/meal", h.analyzeMeal)
		r.Post("/analysis/workout", h.estimateWorkout)
		r.Post("/goals/suggest", h.suggestGoals)
		r.Get("/products/barcode/{code}", h.lookupBarcode)
		r.Get("/foods/{name}", h.lookupFood)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
