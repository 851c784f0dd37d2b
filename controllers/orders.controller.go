package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type CreateOrderInput struct {
	CartID      string                   `json:"cart_id" validate:"required,uuid4"`
	TotalAmount float64                  `json:"total_amount" validate:"required"`
	Currency    string                   `json:"currency"`
	Recipient   models.RecipientSnapshot `json:"recipient" validate:"required"`
	Payment     struct {
		Method string `json:"method" validate:"required"`
	} `json:"payment" validate:"required"`
}

// CreateOrder converts the buyer's cart into the order aggregate. Order,
// items, delivery and payment are written in one transaction; the cart is
// consumed with a status-guarded update so a racing second submit loses.
func CreateOrder(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload CreateOrderInput
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

	var cart models.Cart
	err := initializers.DB.Preload("Items", "deleted_at IS NULL").First(&cart, "id = ? AND buyer_id = ?", payload.CartID, user.ID).Error
	if err != nil {
		// Cross-tenant reads surface as not found, never as forbidden.
		return respondDomainError(c, models.ErrNotFound)
	}
	if err := cart.Consume(); err != nil {
		return respondDomainError(c, err)
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		var product models.Product
		if err := initializers.DB.First(&product, "id = ? AND deleted_at IS NULL", ci.ProductID).Error; err != nil {
			return respondDomainError(c, models.ErrValidation)
		}
		if product.SellerID != ci.SellerID {
			return respondDomainError(c, models.ErrValidation)
		}
		items = append(items, models.OrderItem{
			SellerID:   ci.SellerID,
			ProductID:  ci.ProductID,
			Title:      product.Title,
			Quantity:   ci.Quantity,
			UnitPrice:  ci.UnitPrice,
			FinalPrice: float64(ci.Quantity) * ci.UnitPrice,
			Status:     models.OrderItemOrdered,
		})
	}

	if err := models.ValidateTotal(payload.TotalAmount, items); err != nil {
		return respondDomainError(c, err)
	}

	currency := payload.Currency
	if currency == "" {
		currency = "KRW"
	}

	delivery := models.Delivery{Status: models.DeliveryPrepared}
	if err := delivery.Recipient.Set(payload.Recipient); err != nil {
		return respondDomainError(c, models.ErrValidation)
	}

	order := models.Order{
		BuyerID:     user.ID,
		CartID:      cart.ID,
		TotalAmount: payload.TotalAmount,
		Currency:    currency,
		Status:      models.OrderCreated,
		OrderedAt:   time.Now().UTC(),
		Items:       items,
		Deliveries:  []models.Delivery{delivery},
		Payments: []models.Payment{{
			Amount: payload.TotalAmount,
			Method: payload.Payment.Method,
			Status: "paid",
		}},
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cart{}).
			Where("id = ? AND status = ?", cart.ID, models.CartOpen).
			Update("status", models.CartOrdered)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrCartConsumed
		}
		// Child ids are assigned here and back-filled by gorm; callers never
		// pre-guess an id.
		return tx.Create(&order).Error
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	utils.PublishEvent(utils.EventOrderCreated, fiber.Map{
		"order_id":     order.ID,
		"buyer_id":     order.BuyerID,
		"total_amount": order.TotalAmount,
		"currency":     order.Currency,
	})
	go utils.SendOrderConfirmation(c.Locals("config").(*initializers.Config), user.Email, &order)
	for _, it := range order.Items {
		_ = utils.SendPersonalMessageToClient(it.SellerID.String(), fmt.Sprintf("New sale: %s x%d", it.Title, it.Quantity))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

func GetOrder(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	orderID := c.Params("orderId")
	if _, err := uuid.FromString(orderID); err != nil {
		return respondDomainError(c, models.ErrValidation)
	}

	var order models.Order
	err := initializers.DB.
		Preload("Items").
		Preload("Deliveries", "deleted_at IS NULL").
		Preload("Payments").
		Preload("Shipments", "deleted_at IS NULL").
		Preload("Cancellations").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	if !order.VisibleTo(user) {
		return respondDomainError(c, models.ErrNotFound)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var orders []models.Order
	err := utils.Paginate(c, initializers.DB.Model(&models.Order{}).Preload("Items").
		Where("buyer_id = ?", user.ID).Order("created_at DESC"), &orders)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Orders not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   orders,
	})
}

// GetOrdersForSeller lists orders containing at least one of the seller's
// items.
func GetOrdersForSeller(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	if !user.IsSeller() && !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You are not a seller",
		})
	}

	query := initializers.DB.Model(&models.Order{}).Preload("Items", "seller_id = ?", user.ID).
		Where("EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id AND order_items.seller_id = ?)", user.ID).
		Order("created_at DESC")
	if user.IsAdmin() {
		query = initializers.DB.Model(&models.Order{}).Preload("Items").Order("created_at DESC")
	}

	var orders []models.Order
	if err := utils.Paginate(c, query, &orders); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Orders not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   orders,
	})
}
