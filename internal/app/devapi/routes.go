// Package devapi собирает локальный сервер API TeamSync: маршруты,
// middleware и жизненный цикл HTTP-сервера.
package devapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/teamsync/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/health"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/project/create"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/project/list"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/project/read"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/project/remove"
	"github.com/magabrotheeeer/teamsync/internal/http/handlers/project/update"
	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/metrics"
	authservice "github.com/magabrotheeeer/teamsync/internal/services/auth"
	projectservice "github.com/magabrotheeeer/teamsync/internal/services/project"
)

// Deps зависимости маршрутов.
type Deps struct {
	Auth        *authservice.Service
	Projects    *projectservice.Service
	AuthLimiter *rate.Limiter
	Registry    *prometheus.Registry
}

// NewRouter регистрирует все маршруты API.
func NewRouter(logger *slog.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	httpMetrics := metrics.NewHTTP(deps.Registry)

	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		httpMetrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New().ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, deps.AuthLimiter))
			r.Post("/auth/login", login.New(logger, deps.Auth).ServeHTTP)
			r.Post("/auth/register", register.New(logger, deps.Auth).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))
			r.Get("/projects", list.New(logger, deps.Projects).ServeHTTP)
			r.Post("/projects", create.New(logger, deps.Projects).ServeHTTP)
			r.Get("/projects/{id}", read.New(logger, deps.Projects).ServeHTTP)
			r.Put("/projects/{id}", update.New(logger, deps.Projects).ServeHTTP)
			r.Delete("/projects/{id}", remove.New(logger, deps.Projects).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	return r
}
