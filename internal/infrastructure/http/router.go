package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/handlers"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	HealthHandler   *handlers.HealthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	SitesHandler    *handlers.SitesHandler
	RequireJWT      func(http.Handler) http.Handler
	// SitesRequireAdmin gates site writes behind the admin role as well.
	SitesRequireAdmin bool
	Log               zerolog.Logger
	APIVersion        string
	CORSOrigins       []string
	Secure            func(http.Handler) http.Handler
	IPRateLimit       func(http.Handler) http.Handler // applied to /auth
	UserRateLimit     func(http.Handler) http.Handler // applied after JWT auth
	Metrics           bool                            // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.APIVersion(cfg.APIVersion))
	r.Use(chimid.AllowContentType("application/json"))

	r.Get("/", handlers.Root)
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	userLimit := cfg.UserRateLimit
	if userLimit == nil {
		userLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.IPRateLimit != nil {
				r.Use(cfg.IPRateLimit)
			}
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})
		r.With(cfg.RequireJWT).Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Use(userLimit)

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", cfg.UsersHandler.Me)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", cfg.UsersHandler.List)
				r.Put("/{id}/role", cfg.UsersHandler.UpdateRole)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", cfg.ProjectsHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", cfg.ProjectsHandler.Create)
				r.Put("/{id}", cfg.ProjectsHandler.Update)
				r.Delete("/{id}", cfg.ProjectsHandler.Delete)
			})
		})

		r.Route("/sites", func(r chi.Router) {
			r.Get("/", cfg.SitesHandler.List)
			r.Group(func(r chi.Router) {
				if cfg.SitesRequireAdmin {
					r.Use(middleware.RequireAdmin)
				}
				r.Post("/", cfg.SitesHandler.Create)
				r.Put("/{id}", cfg.SitesHandler.Update)
				r.Delete("/{id}", cfg.SitesHandler.Delete)
			})
		})
	})

	return r
}
