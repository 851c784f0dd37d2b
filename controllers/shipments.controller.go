package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type CreateShipmentInput struct {
	ShipmentCode string `json:"shipment_code" validate:"required"`
	Items        []struct {
		OrderItemID string `json:"order_item_id" validate:"required,uuid4"`
		Quantity    int    `json:"quantity" validate:"required,gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

// remainingQuantity is the unfulfilled rest of an order item: its ordered
// quantity minus what other live shipment items already claim. excludeID
// leaves the shipment item being edited out of the sum.
func remainingQuantity(tx *gorm.DB, orderItem *models.OrderItem, excludeID uuid.UUID) (int, error) {
	var claimed int64
	err := tx.Model(&models.ShipmentItem{}).
		Select("COALESCE(SUM(shipped_quantity), 0)").
		Where("order_item_id = ? AND deleted_at IS NULL AND id <> ?", orderItem.ID, excludeID).
		Scan(&claimed).Error
	if err != nil {
		return 0, err
	}
	return orderItem.Quantity - int(claimed), nil
}

func CreateShipment(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	orderID := c.Params("orderId")

	var payload CreateShipmentInput
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
	if !order.VisibleTo(user) || user.IsBuyer() {
		return respondDomainError(c, models.ErrNotFound)
	}

	orderItems := make(map[uuid.UUID]*models.OrderItem, len(order.Items))
	for i := range order.Items {
		orderItems[order.Items[i].ID] = &order.Items[i]
	}

	reqs := make([]models.ShipmentRequestItem, 0, len(payload.Items))
	for _, in := range payload.Items {
		id, err := uuid.FromString(in.OrderItemID)
		if err != nil {
			return respondDomainError(c, models.ErrValidation)
		}
		reqs = append(reqs, models.ShipmentRequestItem{OrderItemID: id, Quantity: in.Quantity})
	}

	shipment := models.Shipment{
		OrderID:      order.ID,
		ShipmentCode: payload.ShipmentCode,
		Status:       models.ShipmentPending,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		remaining := make(map[uuid.UUID]int, len(reqs))
		for _, req := range reqs {
			oi, ok := orderItems[req.OrderItemID]
			if !ok {
				return models.ErrValidation
			}
			if _, done := remaining[oi.ID]; done {
				continue
			}
			rest, err := remainingQuantity(tx, oi, uuid.Nil)
			if err != nil {
				return err
			}
			remaining[oi.ID] = rest
		}

		sellerID, items, err := models.PlanShipment(reqs, orderItems, remaining)
		if err != nil {
			return err
		}
		// Sellers ship only their own items; admins ship on behalf of the
		// items' seller.
		if user.IsSeller() && sellerID != user.ID {
			return models.ErrForbidden
		}

		shipment.SellerID = sellerID
		shipment.Items = items
		return tx.Create(&shipment).Error
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   shipment,
	})
}

type UpdateShipmentInput struct {
	Status                 string `json:"status"`
	Carrier                string `json:"carrier"`
	ExternalTrackingNumber string `json:"external_tracking_number"`
}

// UpdateShipment moves the shipment forward and/or fills carrier fields. The
// status write is guarded by the previous status in the WHERE clause, so of
// two concurrent transitions exactly one wins and the loser sees a conflict.
func UpdateShipment(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	shipmentID := c.Params("shipmentId")

	var payload UpdateShipmentInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
		})
	}

	var shipment models.Shipment
	if err := initializers.DB.First(&shipment, "id = ?", shipmentID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && shipment.SellerID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := shipment.SetCarrier(payload.Carrier, payload.ExternalTrackingNumber); err != nil {
		return respondDomainError(c, err)
	}

	prev := shipment.Status
	if payload.Status != "" {
		target, err := models.ParseShipmentStatus(payload.Status)
		if err != nil {
			return respondDomainError(c, err)
		}
		if err := shipment.Transition(target, time.Now().UTC()); err != nil {
			return respondDomainError(c, err)
		}
	}

	res := initializers.DB.Model(&models.Shipment{}).
		Where("id = ? AND status = ? AND deleted_at IS NULL", shipment.ID, prev).
		Updates(map[string]interface{}{
			"status":                   shipment.Status,
			"carrier":                  shipment.Carrier,
			"external_tracking_number": shipment.ExternalTrackingNumber,
			"shipped_at":               shipment.ShippedAt,
			"delivered_at":             shipment.DeliveredAt,
		})
	if res.Error != nil {
		return respondDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondDomainError(c, models.ErrInvalidTransition)
	}

	if shipment.Status != prev {
		utils.PublishEvent(utils.EventShipmentTransition, fiber.Map{
			"shipment_id": shipment.ID,
			"order_id":    shipment.OrderID,
			"status":      shipment.Status,
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   shipment,
	})
}

// EraseShipment soft-deletes. Delivered shipments are immutable; a second
// delete on the same id fails.
func EraseShipment(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	shipmentID := c.Params("shipmentId")

	var shipment models.Shipment
	if err := initializers.DB.First(&shipment, "id = ?", shipmentID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && shipment.SellerID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := shipment.EraseShipment(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.Shipment{}).
		Where("id = ? AND deleted_at IS NULL", shipment.ID).
		Update("deleted_at", shipment.DeletedAt)
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

func GetShipmentsForSeller(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	query := initializers.DB.Model(&models.Shipment{}).Preload("Items", "deleted_at IS NULL").
		Where("deleted_at IS NULL").Order("created_at DESC")
	if !user.IsAdmin() {
		query = query.Where("seller_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var shipments []models.Shipment
	if err := utils.Paginate(c, query, &shipments); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Shipments not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   shipments,
	})
}

type UpdateShipmentItemInput struct {
	ShippedQuantity int `json:"shipped_quantity" validate:"required,gt=0"`
}

// UpdateShipmentItem edits shipped_quantity while the parent shipment is
// still pending, bounded by the order item's unfulfilled rest.
func UpdateShipmentItem(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	shipmentID := c.Params("shipmentId")
	itemID := c.Params("itemId")

	var payload UpdateShipmentItemInput
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

	var shipment models.Shipment
	if err := initializers.DB.First(&shipment, "id = ?", shipmentID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && shipment.SellerID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	var item models.ShipmentItem
	if err := initializers.DB.First(&item, "id = ? AND shipment_id = ?", itemID, shipment.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var orderItem models.OrderItem
		if err := tx.First(&orderItem, "id = ?", item.OrderItemID).Error; err != nil {
			return models.ErrNotFound
		}
		remaining, err := remainingQuantity(tx, &orderItem, item.ID)
		if err != nil {
			return err
		}
		if err := item.SetQuantity(&shipment, payload.ShippedQuantity, remaining, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Model(&models.ShipmentItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"shipped_quantity": item.ShippedQuantity,
				"updated_at":       item.UpdatedAt,
			}).Error
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   item,
	})
}
