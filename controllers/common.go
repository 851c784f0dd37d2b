package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopcore/models"
)

var validate = validator.New()

// respondDomainError maps model-layer sentinel errors onto response
// envelopes. Status codes are informational; clients key off the envelope.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Record not found",
		})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You do not have permission to perform this action",
		})
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrFrozen),
		errors.Is(err, models.ErrAlreadyDeleted),
		errors.Is(err, models.ErrCartConsumed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrInsufficientFunds):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrUnknownTransaction),
		errors.Is(err, models.ErrEvidenceRequired),
		errors.Is(err, models.ErrQuantityExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "An unexpected error occurred",
	})
}
