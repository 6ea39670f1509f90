package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentor-match-service/internal/api/http/handlers"
	"github.com/spec-kit/mentor-match-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Mentors        *handlers.MentorsHandler
	MatchRequests  *handlers.MatchRequestsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Users.Signup)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Put("/password", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/me", cfg.Profile.Me)
	api.Put("/profile", cfg.Profile.Update)
	api.Get("/mentors", cfg.Mentors.Search)

	requests := api.Group("/match-requests")
	requests.Post("", cfg.MatchRequests.Create)
	requests.Get("/incoming", cfg.MatchRequests.Incoming)
	requests.Get("/outgoing", cfg.MatchRequests.Outgoing)
	requests.Put("/:id/accept", cfg.MatchRequests.Accept)
	requests.Put("/:id/reject", cfg.MatchRequests.Reject)
	requests.Delete("/:id", cfg.MatchRequests.Cancel)
	requests.Get("/:id/history", cfg.MatchRequests.History)
}
