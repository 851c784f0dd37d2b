package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentShipped   ShipmentStatus = "shipped"
	ShipmentDelivered ShipmentStatus = "delivered"
)

func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	switch ShipmentStatus(s) {
	case ShipmentPending, ShipmentShipped, ShipmentDelivered:
		return ShipmentStatus(s), nil
	}
	return "", ErrValidation
}

// shipmentNext holds the only legal forward edge per state. delivered has
// none: it is terminal.
var shipmentNext = map[ShipmentStatus]ShipmentStatus{
	ShipmentPending: ShipmentShipped,
	ShipmentShipped: ShipmentDelivered,
}

type Shipment struct {
	ID                     uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	OrderID                uuid.UUID      `gorm:"type:uuid;not null;index"`
	SellerID               uuid.UUID      `gorm:"type:uuid;not null;index"`
	ShipmentCode           string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Status                 ShipmentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Carrier                string         `gorm:"type:varchar(100)"`
	ExternalTrackingNumber string         `gorm:"type:varchar(100)"`
	ShippedAt              *time.Time
	DeliveredAt            *time.Time
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
	SoftDeletable
	Items []ShipmentItem `gorm:"foreignKey:ShipmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Terminal reports whether the shipment reached its one-way end state.
func (s *Shipment) Terminal() bool {
	return s.Status == ShipmentDelivered
}

// CanTransition reports whether status may move to target. Only the single
// forward edge is legal; same-state writes and any backward move are not.
func (s *Shipment) CanTransition(target ShipmentStatus) bool {
	return shipmentNext[s.Status] == target
}

// Transition advances the shipment and stamps the set-once timestamps.
func (s *Shipment) Transition(target ShipmentStatus, now time.Time) error {
	if s.IsDeleted() {
		return ErrAlreadyDeleted
	}
	if !s.CanTransition(target) {
		return ErrInvalidTransition
	}
	switch target {
	case ShipmentShipped:
		t := now
		s.ShippedAt = &t
	case ShipmentDelivered:
		t := now
		s.DeliveredAt = &t
	}
	s.Status = target
	return nil
}

// SetCarrier fills carrier/tracking fields. Frozen once delivered.
func (s *Shipment) SetCarrier(carrier, tracking string) error {
	if s.IsDeleted() {
		return ErrAlreadyDeleted
	}
	if s.Terminal() {
		return ErrFrozen
	}
	if carrier != "" {
		s.Carrier = carrier
	}
	if tracking != "" {
		s.ExternalTrackingNumber = tracking
	}
	return nil
}

// EraseShipment soft-deletes. A delivered shipment can never be deleted,
// regardless of caller; a second delete always fails.
func (s *Shipment) EraseShipment(now time.Time) error {
	if s.Terminal() {
		return ErrFrozen
	}
	return s.Erase(now)
}

// ShipmentRequestItem is one requested line of a new shipment.
type ShipmentRequestItem struct {
	OrderItemID uuid.UUID
	Quantity    int
}

// PlanShipment validates the requested lines of a new shipment against the
// order's items and returns the fulfilling seller plus the shipment items to
// create. A shipment belongs to exactly one seller, so lines spanning more
// than one seller are rejected. Lines referencing the same order item count
// cumulatively against its remaining unfulfilled quantity, so a single
// request cannot oversubscribe an item that separate requests could not.
func PlanShipment(reqs []ShipmentRequestItem, orderItems map[uuid.UUID]*OrderItem, remaining map[uuid.UUID]int) (uuid.UUID, []ShipmentItem, error) {
	if len(reqs) == 0 {
		return uuid.Nil, nil, ErrValidation
	}

	var sellerID uuid.UUID
	claimed := make(map[uuid.UUID]int)
	items := make([]ShipmentItem, 0, len(reqs))

	for _, req := range reqs {
		oi, ok := orderItems[req.OrderItemID]
		if !ok {
			return uuid.Nil, nil, ErrValidation
		}
		if sellerID == uuid.Nil {
			sellerID = oi.SellerID
		} else if sellerID != oi.SellerID {
			return uuid.Nil, nil, ErrValidation
		}
		if req.Quantity <= 0 {
			return uuid.Nil, nil, ErrValidation
		}
		claimed[oi.ID] += req.Quantity
		if claimed[oi.ID] > remaining[oi.ID] {
			return uuid.Nil, nil, ErrQuantityExceeded
		}
		items = append(items, ShipmentItem{
			OrderItemID:     oi.ID,
			ShippedQuantity: req.Quantity,
		})
	}

	return sellerID, items, nil
}

type ShipmentItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	ShipmentID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ShippedQuantity int       `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
	SoftDeletable
}

// SetQuantity updates shipped_quantity while the parent shipment is still
// pending. remaining is the unfulfilled quantity of the referenced order
// item, counting all other shipment items against it.
func (si *ShipmentItem) SetQuantity(parent *Shipment, quantity, remaining int, now time.Time) error {
	if si.IsDeleted() || parent.IsDeleted() {
		return ErrAlreadyDeleted
	}
	if parent.Status != ShipmentPending {
		return ErrFrozen
	}
	if quantity <= 0 {
		return ErrValidation
	}
	if quantity > remaining {
		return ErrQuantityExceeded
	}
	si.ShippedQuantity = quantity
	si.UpdatedAt = now
	return nil
}
