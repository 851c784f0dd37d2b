package models

import (
	"time"

	"github.com/jackc/pgtype"
	uuid "github.com/satori/go.uuid"
)

type DeliveryStatus string

const (
	DeliveryPrepared   DeliveryStatus = "prepared"
	DeliveryDispatched DeliveryStatus = "dispatched"
	DeliveryDelivered  DeliveryStatus = "delivered"
)

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch DeliveryStatus(s) {
	case DeliveryPrepared, DeliveryDispatched, DeliveryDelivered:
		return DeliveryStatus(s), nil
	}
	return "", ErrValidation
}

var deliveryNext = map[DeliveryStatus]DeliveryStatus{
	DeliveryPrepared:   DeliveryDispatched,
	DeliveryDispatched: DeliveryDelivered,
}

// Delivery carries the recipient/address snapshot taken at order time. The
// snapshot is a JSONB blob so address edits on the user profile never leak
// into past orders.
type Delivery struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Recipient pgtype.JSONB   `gorm:"type:jsonb;not null"`
	Status    DeliveryStatus `gorm:"type:varchar(20);not null;default:'prepared'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	SoftDeletable
}

func (d *Delivery) Terminal() bool {
	return d.Status == DeliveryDelivered
}

func (d *Delivery) CanTransition(target DeliveryStatus) bool {
	return deliveryNext[d.Status] == target
}

func (d *Delivery) Transition(target DeliveryStatus) error {
	if d.IsDeleted() {
		return ErrAlreadyDeleted
	}
	if !d.CanTransition(target) {
		return ErrInvalidTransition
	}
	d.Status = target
	return nil
}

// EraseDelivery soft-deletes within the cancellable window: only a delivery
// still in prepared may be removed.
func (d *Delivery) EraseDelivery(now time.Time) error {
	if d.Status != DeliveryPrepared {
		return ErrInvalidTransition
	}
	return d.Erase(now)
}

// RecipientSnapshot is the shape serialized into Delivery.Recipient.
type RecipientSnapshot struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Building   string `json:"building"`
	PostalCode string `json:"postal_code"`
}
