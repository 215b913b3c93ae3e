package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, health *HealthChecker) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	if health != nil {
		r.Get("/health", health.HandleHealth)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/insights/{source}", func(r chi.Router) {
			r.Get("/", h.GetInsights)
			r.Post("/generate", h.GenerateInsights)
		})

		r.Route("/recommendations/{id}", func(r chi.Router) {
			r.Post("/apply", h.ApplyRecommendation)
			r.Post("/dismiss", h.DismissRecommendation)
		})
	})

	return r
}
