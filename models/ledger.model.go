package models

import (
	"time"

	"github.com/jackc/pgtype"
	uuid "github.com/satori/go.uuid"
)

type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
)

type TransactionType string

// Closed enumeration; anything else is rejected at the boundary.
const (
	TxIncome     TransactionType = "income"
	TxOutcome    TransactionType = "outcome"
	TxAdjustment TransactionType = "adjustment"
	TxExpiration TransactionType = "expiration"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income", "accrual":
		return TxIncome, nil
	case "outcome", "redemption":
		return TxOutcome, nil
	case "adjustment":
		return TxAdjustment, nil
	case "expiration":
		return TxExpiration, nil
	}
	return "", ErrUnknownTransaction
}

// Account is a per-user mileage/deposit balance. The balance never goes
// negative; the transactions table is its append-only history.
type Account struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_user_code"`
	Code      string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_accounts_user_code"`
	Balance   float64       `gorm:"not null;default:0"`
	Status    AccountStatus `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`

	Transactions []Transaction `gorm:"foreignKey:AccountID"`
}

type Transaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              TransactionType `gorm:"type:varchar(20);not null"`
	Amount            float64         `gorm:"not null"`
	BusinessStatus    string          `gorm:"type:varchar(50);not null;default:'confirmed'"`
	EvidenceReference string          `gorm:"type:varchar(255);not null"`
	Metadata          pgtype.JSONB    `gorm:"type:jsonb"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
	SoftDeletable
}

// Delta is the signed balance effect of the transaction.
func (t *Transaction) Delta() float64 {
	switch t.Type {
	case TxIncome:
		return t.Amount
	case TxOutcome, TxExpiration:
		return -t.Amount
	case TxAdjustment:
		// Adjustments carry their sign in the amount itself.
		return t.Amount
	}
	return 0
}

// ValidateTransaction checks everything that can be checked before touching
// the balance row: closed type set, positive amount for non-adjustments, and
// the mandatory audit evidence.
func ValidateTransaction(t *Transaction) error {
	switch t.Type {
	case TxIncome, TxOutcome, TxAdjustment, TxExpiration:
	default:
		return ErrUnknownTransaction
	}
	if t.Type != TxAdjustment && t.Amount <= 0 {
		return ErrValidation
	}
	if t.EvidenceReference == "" {
		return ErrEvidenceRequired
	}
	return nil
}

// Apply checks the resulting balance against the non-negative invariant and
// mutates the in-memory account. Callers must run this inside the same
// database transaction that persists both rows, with the account row locked
// or the debit guarded by a balance predicate, so two concurrent outcomes
// cannot both pass against a stale balance.
func (a *Account) Apply(t *Transaction) error {
	if a.Status != AccountActive {
		return ErrFrozen
	}
	if err := ValidateTransaction(t); err != nil {
		return err
	}
	next := a.Balance + t.Delta()
	if next < 0 {
		return ErrInsufficientFunds
	}
	a.Balance = next
	return nil
}
