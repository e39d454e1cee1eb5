package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofrs/uuid"

	"github.com/qolzam/envcheck/internal/pkg/log"
	"github.com/qolzam/envcheck/internal/platform/config"
)

const HeaderRequestID = "X-Request-ID"

func Router(handler *Handler, cfg config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "envcheck",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(requestID)
	app.Use(logger.New())

	app.Get("/health", handler.Health)

	v1 := app.Group("/api/v1")
	v1.Get("/checks/env", handler.RunCheck)

	return app
}

// requestID tags each request so handler logs can be correlated.
func requestID(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if id == "" {
		if u, err := uuid.NewV4(); err == nil {
			id = u.String()
		}
	}
	c.Set(HeaderRequestID, id)
	c.SetUserContext(log.WithRequestID(c.UserContext(), id))
	return c.Next()
}
