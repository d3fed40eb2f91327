package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mergington/activities/backend/internal/setup"
	mw "github.com/mergington/activities/shared/middleware"
	"github.com/mergington/activities/shared/middleware/metrics"
)

const (
	mutationBurst    = 10
	limiterIdleAfter = time.Hour
)

// New creates and configures a new chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	be := deps.Config.Public.Backend
	h := deps.Handler

	r.Use(metrics.Middleware)

	// setup CORS for frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: be.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Use(mw.SecurityHeadersWithCSP(be.SecureCookies, mw.APIContentSecurityPolicy))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.GetActivities)

		r.Group(func(r chi.Router) {
			if be.MutationsPerIP > 0 {
				r.Use(mw.RateLimit(mw.NewKeyedLimiter(be.MutationsPerIP, mutationBurst, limiterIdleAfter), mw.GetIP, nil))
			}
			r.Post("/{activity}/signup", h.Signup)
			r.Delete("/{activity}/unregister", h.Unregister)
		})
	})

	return r
}
