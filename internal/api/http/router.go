package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Spots       *handlers.SpotsHandler
	Users       *handlers.UsersHandler
	Allocations *handlers.AllocationsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/spots", cfg.Spots.ListSpots)
	api.Post("/user_info", cfg.Users.UserInfo)
	api.Post("/allocate", cfg.Allocations.Allocate)
	api.Post("/release", cfg.Allocations.Release)
}
