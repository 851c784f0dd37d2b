package models

import (
	"math"
	"time"

	uuid "github.com/satori/go.uuid"
)

type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItemStatus string

const (
	OrderItemOrdered   OrderItemStatus = "ordered"
	OrderItemFulfilled OrderItemStatus = "fulfilled"
	OrderItemCancelled OrderItemStatus = "cancelled"
)

// Order anchors the aggregate. Total and currency are frozen at creation;
// all later mutation happens through child resources.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	BuyerID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	ChannelID   *uuid.UUID  `gorm:"type:uuid;index"`
	SectionID   *uuid.UUID  `gorm:"type:uuid;index"`
	CartID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	TotalAmount float64     `gorm:"not null"`
	Currency    string      `gorm:"type:varchar(10);not null;default:'KRW'"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'created'"`
	OrderedAt   time.Time   `gorm:"not null"`
	CreatedAt   time.Time   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime"`

	Items         []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Deliveries    []Delivery     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Payments      []Payment      `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Shipments     []Shipment     `gorm:"foreignKey:OrderID"`
	Cancellations []Cancellation `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title      string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  float64         `gorm:"not null"`
	FinalPrice float64         `gorm:"not null"`
	Status     OrderItemStatus `gorm:"type:varchar(20);not null;default:'ordered'"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    float64   `gorm:"not null"`
	Method    string    `gorm:"type:varchar(50);not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'paid'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// LineTotal sums quantity * unit price over the given items.
func LineTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}

// ValidateTotal rejects an order whose declared total does not match its line
// items. Amounts are compared with a small epsilon to absorb float noise.
func ValidateTotal(declared float64, items []OrderItem) error {
	if len(items) == 0 {
		return ErrValidation
	}
	for _, it := range items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return ErrValidation
		}
	}
	if math.Abs(LineTotal(items)-declared) > 0.001 {
		return ErrValidation
	}
	return nil
}

// VisibleTo reports whether the principal may read this order: the owning
// buyer, a seller with at least one item in it, or any admin.
func (o *Order) VisibleTo(user UserResponse) bool {
	if user.IsAdmin() {
		return true
	}
	if user.ID == o.BuyerID {
		return true
	}
	if user.IsSeller() {
		for _, it := range o.Items {
			if it.SellerID == user.ID {
				return true
			}
		}
	}
	return false
}
