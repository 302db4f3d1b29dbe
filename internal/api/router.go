// Package api provides the HTTP API for Skycast.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/skycastapp/skycast/internal/api/handler"
	"github.com/skycastapp/skycast/internal/api/middleware"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/session"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	// Session drives every load endpoint.
	Session *session.Session

	// Suggest serves the autocomplete endpoint; its language follows
	// preference updates.
	Suggest *handler.SuggestHandler
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)

	weatherHandler := handler.NewWeatherHandler(cfg.Session, suggestLanguageHook(cfg.Suggest))
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min
	searchRateLimit := middleware.RateLimitByIP(middleware.SearchRateLimit)     // 30 req/min

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/weather", weatherHandler.GetWeather)
			r.Get("/world", weatherHandler.GetWorld)
			r.Get("/recent", weatherHandler.GetRecent)
			r.Put("/prefs", weatherHandler.UpdatePrefs)
		})

		if cfg.Suggest != nil {
			r.Group(func(r chi.Router) {
				r.Use(searchRateLimit)
				r.Get("/suggest", cfg.Suggest.Search)
			})
		}
	})

	return r
}

// suggestLanguageHook keeps the suggestion controller's language in step
// with preference updates. Nil when no suggest handler is mounted.
func suggestLanguageHook(h *handler.SuggestHandler) func(i18n.Language) {
	if h == nil {
		return nil
	}
	return h.SetLanguage
}
