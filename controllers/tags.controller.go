package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type CreateTagInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func CreateTag(c *fiber.Ctx) error {
	var payload CreateTagInput
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

	tag := models.Tag{
		Name:   payload.Name,
		Status: models.TagUnderReview,
	}
	if err := initializers.DB.Create(&tag).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "Tag with that name already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create tag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   tag,
	})
}

type ModerateTagInput struct {
	Action string `json:"action" validate:"required"`
	Reason string `json:"reason"`
}

// ModerateTag applies an admin action, appends the immutable moderation log
// row and moves the tag status, in one transaction.
func ModerateTag(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	tagID := c.Params("tagId")

	var payload ModerateTagInput
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

	action, err := models.ParseModerationAction(payload.Action)
	if err != nil {
		return respondDomainError(c, err)
	}

	var tag models.Tag
	if err := initializers.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	entry, err := tag.Moderate(action, user.ID, payload.Reason, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tag{}).Where("id = ?", tag.ID).Update("status", tag.Status).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	go utils.SendModerationAlert(fmt.Sprintf("Tag %q %s by %s", tag.Name, action, user.Name))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   entry,
	})
}

func GetModerations(c *fiber.Ctx) error {
	tagID := c.Params("tagId")

	var moderations []models.TagModeration
	err := utils.Paginate(c, initializers.DB.Model(&models.TagModeration{}).
		Where("tag_id = ?", tagID).Order("created_at DESC"), &moderations)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Moderation records not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   moderations,
	})
}

// EraseModeration soft-deletes a moderation log row, once.
func EraseModeration(c *fiber.Ctx) error {
	moderationID := c.Params("moderationId")

	var moderation models.TagModeration
	if err := initializers.DB.First(&moderation, "id = ?", moderationID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := moderation.Erase(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.TagModeration{}).
		Where("id = ? AND deleted_at IS NULL", moderation.ID).
		Update("deleted_at", moderation.DeletedAt)
	if res.Error != nil {
		return respondDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondDomainError(c, models.ErrAlreadyDeleted)
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
