package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kratos/kratos/v2/log"
)

// NewRouter creates a new Chi router with all middleware and routes
func NewRouter(svc *CatalogService, rateLimiter *RateLimiter, logger log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", svc.Healthz)
	r.Get("/readyz", svc.Readyz)
	r.Get(NoImagePath, svc.NoImage)

	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)
		r.Get("/api", svc.RandomRedirect)
		r.Get("/api/info", svc.RandomInfo)
		r.Get("/tags", svc.Tags)
	})

	r.Post("/api/login", svc.Login)
	r.Post("/api/logout", svc.Logout)

	r.Group(func(r chi.Router) {
		r.Use(svc.RequireAdmin)
		r.Post("/api/upload", svc.Upload)
		r.Post("/api/append", svc.Append)
		r.Post("/api/batch_delete", svc.BatchDelete)
		r.Get("/api/list", svc.List)
		r.Get("/api/export", svc.Export)
		r.Post("/api/maintenance", svc.Maintenance)
	})

	return r
}
