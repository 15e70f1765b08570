package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups everything Setup mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	User        *handlers.UserHandler
	Progression *handlers.ProgressionHandler
	Level       *handlers.LevelHandler
	Settings    *handlers.SettingsHandler
	Goal        *handlers.GoalHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/user/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Protected routes get JWT per route so the public auth group above stays open.
	jwt := middleware.JWTProtected(cfg)
	api.Post("/user/auth/logout", jwt, h.Auth.Logout)
	api.Delete("/user/account", jwt, h.Auth.DeleteAccount)
	api.Get("/user/progress", jwt, h.Progression.MyProgress)
	api.Get("/user/xp-history", jwt, h.Progression.History)

	goals := api.Group("/goals", jwt)
	goals.Post("/", h.Goal.Create)
	goals.Get("/", h.Goal.List)
	goals.Get("/:id", h.Goal.Get)
	goals.Post("/:id/deposit", h.Goal.Deposit)
	goals.Post("/:id/complete", h.Goal.Complete)

	admin := api.Group("/admin", middleware.AdminTokenOrJWT(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", h.User.ListUsers)
	admin.Get("/users/:userId", h.User.GetUser)
	admin.Post("/users/:userId/add-xp", h.User.AddXP)

	admin.Get("/levels", h.Level.List)
	admin.Put("/levels", h.Level.Replace)
	admin.Put("/levels/:level", h.Level.Set)
	admin.Delete("/levels/:level", h.Level.Delete)

	admin.Get("/settings", h.Settings.GetSettings)
	admin.Put("/settings/:key", h.Settings.SetSetting)
	admin.Delete("/settings/:key", h.Settings.DeleteSetting)
}
