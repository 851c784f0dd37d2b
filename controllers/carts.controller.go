package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"shopcore/initializers"
	"shopcore/models"
)

func CreateCart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	cart := models.Cart{
		BuyerID: user.ID,
		Status:  models.CartOpen,
	}
	if err := initializers.DB.Create(&cart).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create cart",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   cart,
	})
}

type AddCartItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddCartItem snapshots the product's seller and price into the cart line so
// later price edits never change an already-carted item.
func AddCartItem(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	cartID := c.Params("cartId")

	var payload AddCartItemInput
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
	if err := initializers.DB.First(&cart, "id = ? AND buyer_id = ?", cartID, user.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if cart.Status == models.CartOrdered {
		return respondDomainError(c, models.ErrCartConsumed)
	}

	var product models.Product
	if err := initializers.DB.First(&product, "id = ? AND active = true AND deleted_at IS NULL", payload.ProductID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Quantity:  payload.Quantity,
		UnitPrice: product.Price,
	}
	if err := initializers.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to add item to cart",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   item,
	})
}

func EraseCartItem(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	cartID := c.Params("cartId")
	itemID := c.Params("itemId")

	var cart models.Cart
	if err := initializers.DB.First(&cart, "id = ? AND buyer_id = ?", cartID, user.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	var item models.CartItem
	if err := initializers.DB.First(&item, "id = ? AND cart_id = ?", itemID, cart.ID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := item.Erase(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.CartItem{}).
		Where("id = ? AND deleted_at IS NULL", item.ID).
		Update("deleted_at", item.DeletedAt)
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
