package handler

import "github.com/gofiber/fiber/v2"

// RegisterHealthRoutes sets up GET /healthz.
func RegisterHealthRoutes(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
