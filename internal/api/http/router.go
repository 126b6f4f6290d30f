package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enquiry-service/internal/api/http/handlers"
	"github.com/spec-kit/enquiry-service/internal/auth"
	"github.com/spec-kit/enquiry-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Enquiries      *handlers.EnquiriesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Auth.Me)

	enquiries := app.Group("/enquiries", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleStaff))
	enquiries.Post("/", cfg.Enquiries.Create)
	enquiries.Get("/", cfg.Enquiries.List)
	enquiries.Get("/stats", cfg.Enquiries.Stats)
	enquiries.Get("/:id", cfg.Enquiries.Get)
	enquiries.Put("/:id", cfg.Enquiries.Update)
	enquiries.Delete("/:id", cfg.Enquiries.Delete)
	enquiries.Put("/:id/assign", cfg.Enquiries.Assign)
	enquiries.Get("/:id/activity", cfg.Enquiries.Activity)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
