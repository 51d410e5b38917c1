package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/postlens/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/postlens/internal/api/middlewares"
	"github.com/markdave123-py/postlens/internal/config"
	"github.com/markdave123-py/postlens/internal/core/ingestion_engine"
)

// NewRouter returns the API routes with the shared middleware stack.
func NewRouter(cfg *config.Config, ing ingestion_engine.Ingestor, logger *slog.Logger) http.Handler {
	analysisHandler := handlers.NewAnalysisHandler(ing, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handlers.Health)

		api.With(appMiddleware.UploadLimit(cfg.MaxUploadBytes)).Post("/upload", analysisHandler.Upload)
	})

	return r
}
