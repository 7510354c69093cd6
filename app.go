package main

import (
	"io"
	"log/slog"
	"time"

	"productapi/internal/config"
	"productapi/internal/handlers"
	"productapi/internal/middleware"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const welcomeMessage = "Welcome to the Product API! Go to /api/products to see all products."

// NewApp assembles the Fiber application: middleware, the public routes and the
// key-protected product routes. Request lines are written to accessLog.
func NewApp(cfg config.Config, service *services.ProductService, logger *slog.Logger, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productapi",
		ErrorHandler:          middleware.ErrorHandler(logger),
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "${method} request for '${url}' - ${time}\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Output:     accessLog,
	}))

	// --- Public routes ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(welcomeMessage)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"store":  cfg.StoreDriver,
			"events": cfg.RabbitMQURL != "",
		})
	})

	// --- Product routes ---
	guard := middleware.APIKeyRequired(middleware.NewAPIKeyGuard(cfg.APIKey, cfg.APIKeyHash))
	handlers.NewProductHandler(service).RegisterRoutes(app.Group("/api"), guard)

	return app
}
