package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type CreateProductInput struct {
	Title    string  `json:"title" validate:"required"`
	Slug     string  `json:"slug" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Currency string  `json:"currency"`
}

func CreateProduct(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload CreateProductInput
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

	currency := payload.Currency
	if currency == "" {
		currency = "KRW"
	}

	product := models.Product{
		SellerID: user.ID,
		Title:    payload.Title,
		Slug:     payload.Slug,
		Price:    payload.Price,
		Currency: currency,
		Active:   true,
	}
	if err := initializers.DB.Create(&product).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "Product with that slug already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

// SearchProducts lists products scoped to the caller: sellers see only their
// own catalog, admins see everything. No cross-seller leakage.
func SearchProducts(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	query := initializers.DB.Model(&models.Product{}).
		Where("deleted_at IS NULL").Order("created_at DESC")
	if !user.IsAdmin() {
		query = query.Where("seller_id = ?", user.ID)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("title ILIKE ?", "%"+q+"%")
	}
	if slug := c.Query("slug"); slug != "" {
		query = query.Where("slug = ?", slug)
	}

	var products []models.Product
	if err := utils.Paginate(c, query, &products); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Products not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   products,
	})
}

func GetProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var product models.Product
	err := initializers.DB.Preload("Tags", "deleted_at IS NULL").
		First(&product, "id = ? AND deleted_at IS NULL", productID).Error
	if err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

type AttachProductTagInput struct {
	TagID string `json:"tag_id" validate:"required,uuid4"`
}

func AttachProductTag(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	productID := c.Params("productId")

	var payload AttachProductTagInput
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

	var product models.Product
	if err := initializers.DB.First(&product, "id = ? AND deleted_at IS NULL", productID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && product.SellerID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	var tag models.Tag
	if err := initializers.DB.First(&tag, "id = ? AND deleted_at IS NULL", payload.TagID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	link := models.ProductTag{
		ProductID: product.ID,
		TagID:     tag.ID,
	}
	if err := initializers.DB.Create(&link).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to attach tag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   link,
	})
}

type CreateBundleInput struct {
	Name       string   `json:"name" validate:"required"`
	ProductIDs []string `json:"product_ids" validate:"required,min=1,dive,uuid4"`
}

// CreateBundle groups a seller's own products under one bundle.
func CreateBundle(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload CreateBundleInput
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

	products := make([]*models.Product, 0, len(payload.ProductIDs))
	for _, id := range payload.ProductIDs {
		var product models.Product
		if err := initializers.DB.First(&product, "id = ? AND seller_id = ? AND deleted_at IS NULL", id, user.ID).Error; err != nil {
			return respondDomainError(c, models.ErrNotFound)
		}
		products = append(products, &product)
	}

	bundle := models.ProductBundle{
		SellerID: user.ID,
		Name:     payload.Name,
		Products: products,
	}
	if err := initializers.DB.Create(&bundle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create bundle",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   bundle,
	})
}

// GetBundles lists bundles scoped to the owning seller; admins see all.
func GetBundles(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	query := initializers.DB.Model(&models.ProductBundle{}).Preload("Products").
		Where("deleted_at IS NULL").Order("created_at DESC")
	if !user.IsAdmin() {
		query = query.Where("seller_id = ?", user.ID)
	}

	var bundles []models.ProductBundle
	if err := utils.Paginate(c, query, &bundles); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Bundles not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   bundles,
	})
}

// EraseBundle soft-deletes a bundle, once.
func EraseBundle(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	bundleID := c.Params("bundleId")

	var bundle models.ProductBundle
	if err := initializers.DB.First(&bundle, "id = ?", bundleID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && bundle.SellerID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := bundle.Erase(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.ProductBundle{}).
		Where("id = ? AND deleted_at IS NULL", bundle.ID).
		Update("deleted_at", bundle.DeletedAt)
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

// EraseProductTag unlinks a tag from a product, once; the second delete on
// the same link fails.
func EraseProductTag(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	linkID := c.Params("productTagId")

	var link models.ProductTag
	if err := initializers.DB.First(&link, "id = ?", linkID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	if !user.IsAdmin() {
		var product models.Product
		if err := initializers.DB.First(&product, "id = ? AND seller_id = ?", link.ProductID, user.ID).Error; err != nil {
			return respondDomainError(c, models.ErrNotFound)
		}
	}

	if err := link.Erase(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.ProductTag{}).
		Where("id = ? AND deleted_at IS NULL", link.ID).
		Update("deleted_at", link.DeletedAt)
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
