package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"shopcore/initializers"
	"shopcore/models"
)

type UpdateDeliveryInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateDelivery advances prepared -> dispatched -> delivered. Sellers with
// items in the order and admins may transition.
func UpdateDelivery(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	orderID := c.Params("orderId")
	deliveryID := c.Params("deliveryId")

	var payload UpdateDeliveryInput
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

	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !order.VisibleTo(user) {
		return respondDomainError(c, models.ErrNotFound)
	}
	if user.IsBuyer() {
		return respondDomainError(c, models.ErrForbidden)
	}

	var delivery models.Delivery
	if err := initializers.DB.First(&delivery, "id = ? AND order_id = ?", deliveryID, order.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	target, err := models.ParseDeliveryStatus(payload.Status)
	if err != nil {
		return respondDomainError(c, err)
	}

	prev := delivery.Status
	if err := delivery.Transition(target); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.Delivery{}).
		Where("id = ? AND status = ? AND deleted_at IS NULL", delivery.ID, prev).
		Update("status", delivery.Status)
	if res.Error != nil {
		return respondDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondDomainError(c, models.ErrInvalidTransition)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   delivery,
	})
}

// EraseDelivery soft-deletes a delivery inside the cancellable window: only
// while still prepared, only by the owning buyer or an admin.
func EraseDelivery(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	orderID := c.Params("orderId")
	deliveryID := c.Params("deliveryId")

	var order models.Order
	if err := initializers.DB.First(&order, "id = ?", orderID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && order.BuyerID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	var delivery models.Delivery
	if err := initializers.DB.First(&delivery, "id = ? AND order_id = ?", deliveryID, order.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := delivery.EraseDelivery(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.Delivery{}).
		Where("id = ? AND deleted_at IS NULL AND status = ?", delivery.ID, models.DeliveryPrepared).
		Update("deleted_at", delivery.DeletedAt)
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
