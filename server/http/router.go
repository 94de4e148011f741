package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"delivery-report/internal/config"
	"delivery-report/internal/middleware"
	reportHnd "delivery-report/internal/report/handler"
	"delivery-report/server/http/handlers"
)

// multipartOverhead covers form fields and part headers around the uploaded files.
const multipartOverhead = 1 << 20

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	// data file + optional target file
	r.Use(middleware.LimitBytes(cfg.MaxUploadBytes() + cfg.TargetMaxUploadBytes() + multipartOverhead))

	r.Get("/health", handlers.Health)

	r.Route("/report", func(r chi.Router) {
		r.Use(middleware.Concurrency(cfg.MaxConcurrent, cfg.AcquireTimeout))
		r.Post("/", reportHnd.Report(cfg, logger))
		r.Post("/dashboard", reportHnd.Dashboard(cfg, logger))
		r.Post("/export", reportHnd.Export(cfg, logger))
	})

	return r
}
