package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/personal-site/internal/api/http/handlers"
	"github.com/spec-kit/personal-site/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Pages     *handlers.PagesHandler
	Theme     *handlers.ThemeHandler
	Icons     *handlers.IconsHandler
	Resolver  *session.Resolver
	StaticDir string
}

// RegisterRoutes wires HTTP routes. The session resolver runs before every
// handler so each request carries exactly one resolved identity.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Resolver.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Pages.Index)

	api := app.Group("/api")
	api.Get("/theme", cfg.Theme.Get)
	api.Post("/theme", cfg.Theme.Set)
	api.Get("/icon/:name", cfg.Icons.Get)

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}

	app.Use(cfg.Pages.NotFound)
}
