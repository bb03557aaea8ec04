// Package server assembles the Fiber application.
package server

import (
	"time"

	"catalog/internal/handlers"
	"catalog/internal/logger"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
)

// NewApp builds the Fiber app with request logging, the product routes and a
// health check.
func NewApp(productService *services.ProductService, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${method} request for ${url} ${status} ${latency}\n",
		Output: logger.RequestWriter(log),
	}))

	productHandler := handlers.NewProductHandler(productService, log)
	productHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := productService.Ping(c.UserContext()); err != nil {
			log.Error().Err(err).Msg("health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
