package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/trusttrip/booking-service/internal/api/http/handlers"
	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Projects *handlers.ProjectsHandler
	Bookings *handlers.BookingsHandler
	Payments *handlers.PaymentsHandler
	Reviews  *handlers.ReviewsHandler
	Refunds  *handlers.RefundsHandler
	Admin    *handlers.AdminHandler
	Gate     *auth.Gate
	Metrics  *observability.Metrics
	// EnableInspect registers the unverified token decoder. Development only.
	EnableInspect bool
}

// RegisterRoutes wires HTTP routes. The gate guards every route, including unknown ones.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	api := app.Group("/api")
	api.Get("/test", cfg.Health.Database)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/register", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password", cfg.Auth.ChangePassword)
	authGroup.Get("/me", cfg.Auth.Me)
	if cfg.EnableInspect {
		authGroup.Post("/inspect", cfg.Auth.Inspect)
	}

	api.Get("/users", cfg.Users.List)
	api.Post("/users", cfg.Users.Create)
	api.Get("/users/:id", cfg.Users.Get)

	api.Get("/projects", cfg.Projects.List)
	api.Post("/projects", cfg.Projects.Create)
	api.Get("/projects/:id", cfg.Projects.Get)

	api.Get("/bookings", cfg.Bookings.List)
	api.Post("/bookings", cfg.Bookings.Create)
	api.Get("/bookings/:id", cfg.Bookings.Get)
	api.Post("/bookings/:id/cancel", cfg.Bookings.Cancel)

	api.Get("/payments", cfg.Payments.List)
	api.Post("/payments", cfg.Payments.Create)
	api.Get("/payments/:id", cfg.Payments.Get)

	api.Get("/reviews", cfg.Reviews.List)
	api.Post("/reviews", cfg.Reviews.Create)

	api.Get("/refund", cfg.Refunds.List)
	api.Post("/refund", cfg.Refunds.Create)
	api.Get("/refund/quote", cfg.Refunds.Quote)

	admin := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	admin.Get("", cfg.Admin.Dashboard)
	admin.Post("/users", cfg.Admin.UserAction)
	admin.Patch("/refunds/:id", cfg.Admin.DecideRefund)
}
