package routes

import (
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Deps carries everything Setup needs to mount the API.
type Deps struct {
	Tokens   *services.TokenService
	Profiles *services.ProfileService
	Metrics  *middleware.Metrics

	AuthHandler   *handlers.AuthHandler
	TaskHandler   *handlers.TaskHandler
	HealthHandler *handlers.HealthHandler
}

func Setup(app *fiber.App, deps Deps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/", deps.HealthHandler.Check)
	app.Get("/health", deps.HealthHandler.Check)

	authRequired := middleware.JWTProtected(deps.Tokens)
	adminRequired := middleware.AdminRequired(deps.Profiles)

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Post("/login/anonymous", deps.AuthHandler.LoginAnonymous)
	auth.Get("/me", authRequired, deps.AuthHandler.Me)
	auth.Post("/logout", authRequired, deps.AuthHandler.Logout)

	// Tasks: reads are public, writes need an admin profile
	api.Get("/tasks", deps.TaskHandler.List)
	api.Get("/tasks/:id", deps.TaskHandler.Get)
	api.Post("/tasks", authRequired, adminRequired, deps.TaskHandler.Create)
	api.Put("/tasks/:id", authRequired, adminRequired, deps.TaskHandler.Update)
	api.Delete("/tasks/:id", authRequired, adminRequired, deps.TaskHandler.Delete)
}
