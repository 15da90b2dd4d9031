package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Posts          *handlers.PostsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	requireAccess := cfg.AuthMiddleware.RequireAccessToken
	requireRefresh := cfg.AuthMiddleware.RequireRefreshToken

	authGroup := app.Group("/auth")
	authGroup.Post("/token/access", requireRefresh, cfg.Auth.PostTokenAccess)
	authGroup.Post("/token/refresh", requireRefresh, cfg.Auth.PostTokenRefresh)
	authGroup.Post("/login/email", cfg.Auth.PostLoginEmail)
	authGroup.Post("/register/email", cfg.Auth.PostRegisterEmail)

	users := app.Group("/users", requireAccess)
	users.Get("/", cfg.Users.List)
	users.Get("/me", cfg.Users.Me)

	posts := app.Group("/posts")
	posts.Get("/", cfg.Posts.List)
	posts.Get("/:id", cfg.Posts.Get)
	posts.Post("/", requireAccess, cfg.Posts.Create)
	posts.Patch("/:id", requireAccess, cfg.Posts.Update)
	posts.Delete("/:id", requireAccess, cfg.Posts.Delete)
}
