package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/b4os-dev/classboard-api/internal/config"
	"github.com/b4os-dev/classboard-api/internal/handler"
	"github.com/b4os-dev/classboard-api/internal/middleware"
	"github.com/b4os-dev/classboard-api/internal/models"
	"github.com/b4os-dev/classboard-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LeaderboardHandler *handler.LeaderboardHandler
	StudentHandler     *handler.StudentHandler
	ReviewHandler      *handler.ReviewHandler
	AdminHandler       *handler.AdminHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := api.Group("", jwtMiddleware)

	if deps.LeaderboardHandler != nil {
		deps.LeaderboardHandler.Register(protected)
	}

	if deps.StudentHandler != nil {
		students := protected.Group("/students")
		deps.StudentHandler.Register(students)
	}

	if deps.ReviewHandler != nil {
		reviews := protected.Group("/reviews",
			middleware.RequireRole(models.RoleAdmin, models.RoleInstructor),
			middleware.RateLimit("reviews", cfg.ReviewWriteLimit, cfg.ReviewWriteWindow),
		)
		deps.ReviewHandler.Register(reviews)
	}

	if deps.AdminHandler != nil {
		admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		deps.AdminHandler.Register(admin)
	}
}
