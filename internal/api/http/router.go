package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/staynest/rental-service/internal/api/http/handlers"
	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/cache"
	"github.com/staynest/rental-service/internal/events"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Hosts          *handlers.HostsHandler
	Properties     *handlers.PropertiesHandler
	Amenities      *handlers.AmenitiesHandler
	Bookings       *handlers.BookingsHandler
	Reviews        *handlers.ReviewsHandler
	AuthMiddleware *auth.AuthMiddleware
	Cache          *cache.ResponseCache
}

// crud is the handler set every resource exposes.
type crud interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// RegisterRoutes wires HTTP routes. Reads and login are public; every write
// passes through the auth middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	health := app.Group("/health")
	health.Get("/live", cfg.Health.Live)
	health.Get("/ready", cfg.Health.Ready)
	health.Get("/metrics", cfg.Health.Metrics)

	app.Post("/login", cfg.Users.Login)

	registerResource(app, "/users", events.ResourceUser, cfg.Users, cfg)
	registerResource(app, "/hosts", events.ResourceHost, cfg.Hosts, cfg)
	registerResource(app, "/properties", events.ResourceProperty, cfg.Properties, cfg)
	registerResource(app, "/amenities", events.ResourceAmenity, cfg.Amenities, cfg)
	registerResource(app, "/bookings", events.ResourceBooking, cfg.Bookings, cfg)
	registerResource(app, "/reviews", events.ResourceReview, cfg.Reviews, cfg)
}

func registerResource(app *fiber.App, prefix, resource string, h crud, cfg RouteConfig) {
	group := app.Group(prefix)

	cached := cfg.Cache.Middleware(resource)
	group.Get("/", cached, h.List)
	group.Get("/:id", cached, h.Get)

	requireAuth := cfg.AuthMiddleware.Handle
	group.Post("/", requireAuth, h.Create)
	group.Put("/:id", requireAuth, h.Update)
	group.Delete("/:id", requireAuth, h.Delete)
}
