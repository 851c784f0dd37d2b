package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NotFoundRoute describes the 404 fallback.
func NotFoundRoute(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		// Websocket upgrades are handled by their own route.
		if strings.HasPrefix(c.Path(), "/ws/") {
			return c.Next()
		}

		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true,
			"msg":   "sorry, endpoint is not found",
		})
	})
}
