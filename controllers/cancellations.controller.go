package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type RequestCancellationInput struct {
	Reason string `json:"reason" validate:"required"`
}

func RequestCancellation(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	orderID := c.Params("orderId")

	var payload RequestCancellationInput
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
	if err := initializers.DB.First(&order, "id = ? AND buyer_id = ?", orderID, user.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	cancellation := models.Cancellation{
		OrderID: order.ID,
		BuyerID: user.ID,
		Status:  models.CancellationRequested,
		Reason:  payload.Reason,
	}
	if err := initializers.DB.Create(&cancellation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create cancellation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   cancellation,
	})
}

type DecideCancellationInput struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

// DecideCancellation moves requested -> approved|rejected, once. Approval
// refunds the order total into the buyer's deposit account inside the same
// database transaction, so the decision and the ledger entry land together
// or not at all.
func DecideCancellation(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	cancellationID := c.Params("cancellationId")

	var payload DecideCancellationInput
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

	var cancellation models.Cancellation
	if err := initializers.DB.First(&cancellation, "id = ?", cancellationID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order, "id = ?", cancellation.OrderID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() {
		if !user.IsSeller() || !order.VisibleTo(user) {
			return respondDomainError(c, models.ErrNotFound)
		}
	}

	target := models.CancellationStatus(payload.Status)
	prev := cancellation.Status
	if err := cancellation.Decide(target, payload.Reason, user.ID, time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cancellation{}).
			Where("id = ? AND status = ?", cancellation.ID, prev).
			Updates(map[string]interface{}{
				"status":     cancellation.Status,
				"reason":     cancellation.Reason,
				"decided_by": cancellation.DecidedBy,
				"decided_at": cancellation.DecidedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrFrozen
		}

		if target != models.CancellationApproved {
			return nil
		}

		// Refund: credit the buyer's deposit account.
		var account models.Account
		if err := tx.First(&account, "user_id = ? AND code = ?", order.BuyerID, "deposit").Error; err != nil {
			return models.ErrNotFound
		}
		refund := models.Transaction{
			AccountID:         account.ID,
			Type:              models.TxIncome,
			Amount:            order.TotalAmount,
			BusinessStatus:    "refund",
			EvidenceReference: "cancellation:" + cancellation.ID.String(),
		}
		if err := account.Apply(&refund); err != nil {
			return err
		}
		res = tx.Model(&models.Account{}).
			Where("id = ? AND status = ?", account.ID, models.AccountActive).
			Update("balance", gorm.Expr("balance + ?", refund.Delta()))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrFrozen
		}
		return tx.Create(&refund).Error
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	utils.PublishEvent(utils.EventCancellationDecided, fiber.Map{
		"cancellation_id": cancellation.ID,
		"order_id":        cancellation.OrderID,
		"status":          cancellation.Status,
	})
	_ = utils.SendPersonalMessageToClient(order.BuyerID.String(), "Your cancellation was "+string(target))

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   cancellation,
	})
}

func GetCancellations(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	query := initializers.DB.Model(&models.Cancellation{}).Order("created_at DESC")
	switch {
	case user.IsAdmin():
		// Admins see everything.
	case user.IsSeller():
		query = query.Where("EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = cancellations.order_id AND order_items.seller_id = ?)", user.ID)
	default:
		query = query.Where("buyer_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cancellations []models.Cancellation
	if err := utils.Paginate(c, query, &cancellations); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Cancellations not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   cancellations,
	})
}
