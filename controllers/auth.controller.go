package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type SignUpInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	Role            string `json:"role" validate:"required"`
	AdminSecret     string `json:"adminSecret"`
}

func SignUpUser(c *fiber.Ctx) error {
	var payload SignUpInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	if payload.Password != payload.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Passwords do not match",
		})
	}

	role, err := models.ParseRole(payload.Role)
	if err != nil {
		return respondDomainError(c, err)
	}

	config := c.Locals("config").(*initializers.Config)

	// Admin accounts are only created with the bootstrap secret.
	if role == models.RoleAdmin && payload.AdminSecret != config.AdminBootstrapSecret {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You do not have permission to create an admin account",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to hash password",
		})
	}

	user := models.User{
		Name:     payload.Name,
		Email:    strings.ToLower(payload.Email),
		Password: string(hashed),
		Role:     role,
	}

	if err := initializers.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "User with that email already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   models.FilterUserRecord(&user),
	})
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func SignInUser(c *fiber.Ctx) error {
	var payload SignInInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	var user models.User
	err := initializers.DB.First(&user, "email = ?", strings.ToLower(payload.Email)).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}

	config := c.Locals("config").(*initializers.Config)

	accessToken, err := utils.CreateToken(user.ID.String(), config.AccessTokenExpiresIn, config.AccessTokenSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create access token",
		})
	}

	refreshToken, err := utils.CreateToken(user.ID.String(), config.RefreshTokenExpiresIn, config.RefreshTokenSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create refresh token",
		})
	}

	// Park the refresh token id in redis so it can be revoked on logout.
	err = initializers.RedisClient.Set(initializers.Ctx, refreshToken.TokenUuid, user.ID.String(), config.RefreshTokenExpiresIn).Err()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to persist session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken.Token,
		Path:     "/",
		MaxAge:   int(config.AccessTokenExpiresIn.Seconds()),
		HTTPOnly: true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken.Token,
		Path:     "/",
		MaxAge:   int(config.RefreshTokenExpiresIn.Seconds()),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"status":       "success",
		"access_token": accessToken.Token,
	})
}

func RefreshAccessToken(c *fiber.Ctx) error {
	refresh := c.Cookies("refresh_token")
	if refresh == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not refresh access token",
		})
	}

	config := c.Locals("config").(*initializers.Config)

	payload, err := utils.ValidateToken(refresh, config.RefreshTokenSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired refresh token",
		})
	}

	userID, err := initializers.RedisClient.Get(initializers.Ctx, payload.TokenUuid).Result()
	if err != nil || userID != payload.UserID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Session expired, please log in again",
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "The user belonging to this token no longer exists",
		})
	}

	accessToken, err := utils.CreateToken(user.ID.String(), config.AccessTokenExpiresIn, config.AccessTokenSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create access token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken.Token,
		Path:     "/",
		MaxAge:   int(config.AccessTokenExpiresIn.Seconds()),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"status":       "success",
		"access_token": accessToken.Token,
	})
}

func LogoutUser(c *fiber.Ctx) error {
	refresh := c.Cookies("refresh_token")
	config := c.Locals("config").(*initializers.Config)

	if refresh != "" {
		if payload, err := utils.ValidateToken(refresh, config.RefreshTokenSecret); err == nil {
			initializers.RedisClient.Del(initializers.Ctx, payload.TokenUuid)
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, Path: "/"})

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
