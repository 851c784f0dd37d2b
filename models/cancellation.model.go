package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type CancellationStatus string

const (
	CancellationRequested CancellationStatus = "requested"
	CancellationApproved  CancellationStatus = "approved"
	CancellationRejected  CancellationStatus = "rejected"
)

// Cancellation is a buyer's request to unwind an order. requested is the only
// initial state; approved and rejected are both terminal.
type Cancellation struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	OrderID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	BuyerID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Status    CancellationStatus `gorm:"type:varchar(20);not null;default:'requested'"`
	Reason    string             `gorm:"type:text"`
	DecidedBy *uuid.UUID         `gorm:"type:uuid"`
	DecidedAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (c *Cancellation) Terminal() bool {
	return c.Status == CancellationApproved || c.Status == CancellationRejected
}

// Decide moves requested to approved or rejected, once. The reason may ride
// along with the decision but a terminal record accepts no further writes,
// not even a reason-only edit.
func (c *Cancellation) Decide(target CancellationStatus, reason string, decidedBy uuid.UUID, now time.Time) error {
	if c.Terminal() {
		return ErrFrozen
	}
	if target != CancellationApproved && target != CancellationRejected {
		return ErrInvalidTransition
	}
	c.Status = target
	if reason != "" {
		c.Reason = reason
	}
	id := decidedBy
	c.DecidedBy = &id
	t := now
	c.DecidedAt = &t
	return nil
}

// UpdateReason allows editing the rationale only while still requested.
func (c *Cancellation) UpdateReason(reason string) error {
	if c.Terminal() {
		return ErrFrozen
	}
	c.Reason = reason
	return nil
}
