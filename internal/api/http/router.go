package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/clothing-store/internal/api/http/handlers"
	"github.com/spec-kit/clothing-store/internal/auth"
	"github.com/spec-kit/clothing-store/internal/domain"
	"github.com/spec-kit/clothing-store/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Products *handlers.ProductsHandler
	Users    *handlers.UsersHandler
	Verifier *auth.Verifier
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	protect := cfg.Verifier.Handle
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/logout", protect, cfg.Auth.Logout)
	authGroup.Get("/me", protect, cfg.Auth.Me)

	catalogWriters := auth.Authorize(domain.RoleSeller, domain.RoleAdmin)
	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", protect, catalogWriters, cfg.Products.Create)
	products.Put("/:id", protect, catalogWriters, cfg.Products.Update)
	products.Delete("/:id", protect, catalogWriters, cfg.Products.Delete)

	users := api.Group("/users", protect, auth.Authorize(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
