package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

// DeserializeUser resolves the bearer token into an immutable principal and
// stores it in c.Locals("user"). Every protected route runs behind this.
func DeserializeUser(c *fiber.Ctx) error {
	var access string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		access = strings.TrimPrefix(authorization, "Bearer ")
	} else if c.Cookies("access_token") != "" {
		access = c.Cookies("access_token")
	}

	if access == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "You are not logged in",
		})
	}

	config, _ := c.Locals("config").(*initializers.Config)
	if config == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Server configuration missing",
		})
	}

	payload, err := utils.ValidateToken(access, config.AccessTokenSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired token",
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, "id = ?", payload.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "The user belonging to this token no longer exists",
		})
	}

	c.Locals("user", models.FilterUserRecord(&user))
	c.Locals("access_token_uuid", payload.TokenUuid)

	return c.Next()
}
