package middleware

import (
	"github.com/gofiber/fiber/v2"

	"shopcore/models"
)

// RequireRole rejects principals outside the allowed role classes. Ownership
// checks stay in the controllers next to their queries; this only gates the
// role class.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.UserResponse)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "You are not logged in",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You do not have permission to perform this action",
		})
	}
}
