package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/activities/frontend/internal/handler"
	frontend_mw "github.com/mergington/activities/frontend/internal/middleware"
	"github.com/mergington/activities/frontend/internal/setup"
	mw "github.com/mergington/activities/shared/middleware"
	"github.com/mergington/activities/shared/middleware/metrics"
)

const (
	mutationBurst    = 5
	limiterIdleAfter = time.Hour
)

func SetupRouter(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	fe := deps.Public.Frontend
	h := deps.Handler

	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeadersWithCSP(fe.SecureCookies, mw.PageContentSecurityPolicy))

	r.Get("/health", handler.HealthHandler)
	r.Handle("/metrics", metrics.Handler())

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.Middleware)
		r.Use(frontend_mw.GenerateCSRFToken(frontend_mw.CSRFConfig{SecureCookies: fe.SecureCookies}))
		r.Use(frontend_mw.ValidateCSRFToken())

		r.Get("/", h.IndexGetHandler)
		r.Get("/unregister", h.ConfirmUnregisterGetHandler)

		// Form posts that reach the activities API
		r.Group(func(r chi.Router) {
			if fe.MutationsPerIP > 0 {
				limiter := mw.NewKeyedLimiter(fe.MutationsPerIP, mutationBurst, limiterIdleAfter)
				r.Use(mw.RateLimit(limiter, mw.GetIP, h.RateLimitedHandler))
			}
			r.Post("/signup", h.SignupPostHandler)
			r.Post("/unregister", h.UnregisterPostHandler)
		})
	})

	return r
}
