package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopcore/initializers"
	"shopcore/models"
	"shopcore/utils"
)

type CreateAccountInput struct {
	Code           string  `json:"code" validate:"required"`
	InitialBalance float64 `json:"initial_balance" validate:"gte=0"`
}

func CreateAccount(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload CreateAccountInput
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

	account := models.Account{
		UserID:  user.ID,
		Code:    payload.Code,
		Balance: payload.InitialBalance,
		Status:  models.AccountActive,
	}
	if err := initializers.DB.Create(&account).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "Account with that code already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   account,
	})
}

func GetAccount(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	accountID := c.Params("accountId")

	var account models.Account
	if err := initializers.DB.First(&account, "id = ?", accountID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && account.UserID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   account,
	})
}

type CreateTransactionInput struct {
	Type              string  `json:"type" validate:"required"`
	Amount            float64 `json:"amount" validate:"required"`
	BusinessStatus    string  `json:"business_status"`
	EvidenceReference string  `json:"evidence_reference" validate:"required"`
}

// CreateTransaction appends a ledger entry. The balance check and the debit
// are a single guarded UPDATE inside the transaction, so two concurrent
// outcomes cannot both pass against a stale balance. Ownership comes from
// the account row, never from payload claims.
func CreateTransaction(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	accountID := c.Params("accountId")

	var payload CreateTransactionInput
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

	var account models.Account
	if err := initializers.DB.First(&account, "id = ?", accountID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && account.UserID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	txType, err := models.ParseTransactionType(payload.Type)
	if err != nil {
		return respondDomainError(c, err)
	}

	businessStatus := payload.BusinessStatus
	if businessStatus == "" {
		businessStatus = "confirmed"
	}

	trx := models.Transaction{
		AccountID:         account.ID,
		Type:              txType,
		Amount:            payload.Amount,
		BusinessStatus:    businessStatus,
		EvidenceReference: payload.EvidenceReference,
	}
	// In-memory pre-check; the guarded UPDATE below re-enforces the balance
	// invariant against the live row.
	if err := account.Apply(&trx); err != nil {
		return respondDomainError(c, err)
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Account{}).
			Where("id = ? AND status = ? AND balance + ? >= 0", account.ID, models.AccountActive, trx.Delta()).
			Update("balance", gorm.Expr("balance + ?", trx.Delta()))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInsufficientFunds
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	utils.PublishEvent(utils.EventTransactionPosted, fiber.Map{
		"transaction_id": trx.ID,
		"account_id":     account.ID,
		"type":           trx.Type,
		"amount":         trx.Amount,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   trx,
	})
}

func GetTransactions(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	accountID := c.Params("accountId")

	var account models.Account
	if err := initializers.DB.First(&account, "id = ?", accountID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}
	if !user.IsAdmin() && account.UserID != user.ID {
		return respondDomainError(c, models.ErrNotFound)
	}

	query := initializers.DB.Model(&models.Transaction{}).
		Where("account_id = ?", account.ID).Order("created_at DESC")
	// Deleted rows stay visible to admins for audit.
	if !user.IsAdmin() {
		query = query.Where("deleted_at IS NULL")
	}

	var transactions []models.Transaction
	if err := utils.Paginate(c, query, &transactions); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Transactions not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   transactions,
	})
}

// EraseTransaction is the admin-only soft delete; second delete on the same
// id fails.
func EraseTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")

	var trx models.Transaction
	if err := initializers.DB.First(&trx, "id = ?", transactionID).Error; err != nil {
		return respondDomainError(c, models.ErrNotFound)
	}

	if err := trx.Erase(time.Now().UTC()); err != nil {
		return respondDomainError(c, err)
	}

	res := initializers.DB.Model(&models.Transaction{}).
		Where("id = ? AND deleted_at IS NULL", trx.ID).
		Update("deleted_at", trx.DeletedAt)
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
