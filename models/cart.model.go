package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type CartStatus string

const (
	CartOpen    CartStatus = "open"
	CartOrdered CartStatus = "ordered"
)

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	BuyerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Consume marks the cart as converted into an order. A cart is consumed at
// most once; the second attempt fails and the caller must roll back.
func (c *Cart) Consume() error {
	if c.Status == CartOrdered {
		return ErrCartConsumed
	}
	c.Status = CartOrdered
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	UnitPrice float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	SoftDeletable
}
