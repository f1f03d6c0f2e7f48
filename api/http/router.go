package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/authd/api/http/handlers"
)

// Guards bundles the auth-gate middlewares the router attaches to
// protected route groups.
type Guards struct {
	RequireAuth      fiber.Handler
	RequireActive    fiber.Handler
	RequireSuperuser fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, users *handlers.UserHandler, health *handlers.HealthHandler, g Guards) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/refresh", auth.Refresh)
	a.Get("/me", g.RequireAuth, g.RequireActive, auth.Me)

	u := v1.Group("/users", g.RequireAuth, g.RequireActive)
	// "/me" is registered before "/:id" so it is matched first.
	u.Put("/me", users.UpdateMe)
	u.Post("/", g.RequireSuperuser, users.Create)
	u.Get("/", g.RequireSuperuser, users.List)
	u.Get("/:id", users.GetByID)
	u.Put("/:id", g.RequireSuperuser, users.Update)
	u.Delete("/:id", g.RequireSuperuser, users.Delete)
}
