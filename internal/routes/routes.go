package routes

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/handler"
	"overol-konfigurator-backend/internal/middleware"
)

// Handlers bündelt alle HTTP-Handler der API.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Orders   *handler.OrderHandler
	Sessions *handler.SessionHandler
	Admin    *handler.AdminHandler
}

// Options steuert die globale Middleware.
type Options struct {
	RateLimit   float64
	CORSOrigins []string
}

// Setup registriert globale Middleware und alle Endpunkte unter /api am Router.
func Setup(r chi.Router, h Handlers, logger *zap.Logger, opts Options) {
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.RateLimit(opts.RateLimit, logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Catalog.Health)
		r.Get("/zones", h.Catalog.Zones)
		r.Get("/fabric-types", h.Catalog.FabricTypes)
		r.Get("/colors", h.Catalog.Colors)
		r.Get("/colors/{fabricType}", h.Catalog.ColorsByFabricType)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.Create)
			r.Get("/{id}/pdf", h.Orders.PDF)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.Sessions.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Sessions.Get)
				r.Delete("/", h.Sessions.Delete)
				r.Post("/gestures", h.Sessions.Gesture)
				r.Post("/color", h.Sessions.ApplyColor)
				r.Delete("/selection", h.Sessions.Reset)
				r.Post("/submit", h.Sessions.Submit)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Admin.Login)
			r.Post("/colors", h.Admin.Colors)
			r.Get("/colors/export", h.Admin.Export)
		})
	})
}
