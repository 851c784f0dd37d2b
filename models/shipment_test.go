package models

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentTransitionForward(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}

	require.NoError(t, s.Transition(ShipmentShipped, now))
	assert.Equal(t, ShipmentShipped, s.Status)
	require.NotNil(t, s.ShippedAt)

	require.NoError(t, s.Transition(ShipmentDelivered, now.Add(time.Hour)))
	assert.Equal(t, ShipmentDelivered, s.Status)
	require.NotNil(t, s.DeliveredAt)
}

func TestShipmentTransitionNoSkip(t *testing.T) {
	s := &Shipment{Status: ShipmentPending}
	err := s.Transition(ShipmentDelivered, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ShipmentPending, s.Status)
	assert.Nil(t, s.DeliveredAt)
}

func TestShipmentNoRegression(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}
	require.NoError(t, s.Transition(ShipmentShipped, now))

	assert.ErrorIs(t, s.Transition(ShipmentPending, now), ErrInvalidTransition)
	assert.Equal(t, ShipmentShipped, s.Status)

	require.NoError(t, s.Transition(ShipmentDelivered, now))
	assert.ErrorIs(t, s.Transition(ShipmentShipped, now), ErrInvalidTransition)
	assert.ErrorIs(t, s.Transition(ShipmentPending, now), ErrInvalidTransition)
	assert.Equal(t, ShipmentDelivered, s.Status)
}

func TestShipmentDeliveredFreezesFields(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}
	require.NoError(t, s.SetCarrier("CJ Logistics", "TRACK-1"))
	require.NoError(t, s.Transition(ShipmentShipped, now))
	require.NoError(t, s.Transition(ShipmentDelivered, now))

	err := s.SetCarrier("Hanjin", "TRACK-2")
	assert.ErrorIs(t, err, ErrFrozen)
	assert.Equal(t, "CJ Logistics", s.Carrier)
	assert.Equal(t, "TRACK-1", s.ExternalTrackingNumber)
}

func TestShipmentEraseTwiceFails(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}

	require.NoError(t, s.EraseShipment(now))
	assert.True(t, s.IsDeleted())

	err := s.EraseShipment(now.Add(time.Second))
	assert.ErrorIs(t, err, ErrAlreadyDeleted)
}

func TestShipmentEraseDeliveredFails(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}
	require.NoError(t, s.Transition(ShipmentShipped, now))
	require.NoError(t, s.Transition(ShipmentDelivered, now))

	assert.ErrorIs(t, s.EraseShipment(now), ErrFrozen)
	assert.False(t, s.IsDeleted())
}

func TestShipmentEraseShippedAllowed(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}
	require.NoError(t, s.Transition(ShipmentShipped, now))
	assert.NoError(t, s.EraseShipment(now))
}

func TestDeletedShipmentRejectsTransitions(t *testing.T) {
	now := time.Now().UTC()
	s := &Shipment{Status: ShipmentPending}
	require.NoError(t, s.EraseShipment(now))

	assert.ErrorIs(t, s.Transition(ShipmentShipped, now), ErrAlreadyDeleted)
	assert.ErrorIs(t, s.SetCarrier("CJ", "X"), ErrAlreadyDeleted)
}

func TestParseShipmentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "shipped", "delivered"} {
		st, err := ParseShipmentStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, ShipmentStatus(valid), st)
	}
	_, err := ParseShipmentStatus("teleported")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShipmentItemSetQuantity(t *testing.T) {
	now := time.Now().UTC()
	parent := &Shipment{Status: ShipmentPending}
	before := now.Add(-time.Minute)
	si := &ShipmentItem{ShippedQuantity: 1, UpdatedAt: before}

	require.NoError(t, si.SetQuantity(parent, 2, 3, now))
	assert.Equal(t, 2, si.ShippedQuantity)
	assert.True(t, si.UpdatedAt.After(before), "updated_at must move to a strictly later value")
}

func TestShipmentItemQuantityExceedsRemaining(t *testing.T) {
	parent := &Shipment{Status: ShipmentPending}
	si := &ShipmentItem{ShippedQuantity: 1}

	err := si.SetQuantity(parent, 5, 3, time.Now())
	assert.ErrorIs(t, err, ErrQuantityExceeded)
	assert.Equal(t, 1, si.ShippedQuantity)
}

func TestShipmentItemFrozenAfterShipped(t *testing.T) {
	now := time.Now().UTC()
	parent := &Shipment{Status: ShipmentPending}
	require.NoError(t, parent.Transition(ShipmentShipped, now))

	si := &ShipmentItem{ShippedQuantity: 1}
	assert.ErrorIs(t, si.SetQuantity(parent, 2, 10, now), ErrFrozen)
	assert.Equal(t, 1, si.ShippedQuantity)
}

func TestShipmentItemParentDeletedRejected(t *testing.T) {
	now := time.Now().UTC()
	parent := &Shipment{Status: ShipmentPending}
	require.NoError(t, parent.EraseShipment(now))

	si := &ShipmentItem{ShippedQuantity: 1}
	assert.ErrorIs(t, si.SetQuantity(parent, 2, 10, now), ErrAlreadyDeleted)
	assert.Equal(t, 1, si.ShippedQuantity)
}

func TestPlanShipmentSingleSeller(t *testing.T) {
	seller := uuid.NewV4()
	a := &OrderItem{ID: uuid.NewV4(), SellerID: seller, Quantity: 3}
	b := &OrderItem{ID: uuid.NewV4(), SellerID: seller, Quantity: 2}
	orderItems := map[uuid.UUID]*OrderItem{a.ID: a, b.ID: b}
	remaining := map[uuid.UUID]int{a.ID: 3, b.ID: 2}

	sellerID, items, err := PlanShipment([]ShipmentRequestItem{
		{OrderItemID: a.ID, Quantity: 2},
		{OrderItemID: b.ID, Quantity: 2},
	}, orderItems, remaining)
	require.NoError(t, err)
	assert.Equal(t, seller, sellerID)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ShippedQuantity)
}

func TestPlanShipmentCumulativeClaims(t *testing.T) {
	seller := uuid.NewV4()
	a := &OrderItem{ID: uuid.NewV4(), SellerID: seller, Quantity: 3}
	orderItems := map[uuid.UUID]*OrderItem{a.ID: a}
	remaining := map[uuid.UUID]int{a.ID: 3}

	// Two lines for the same order item count together: 3 + 3 > 3.
	_, _, err := PlanShipment([]ShipmentRequestItem{
		{OrderItemID: a.ID, Quantity: 3},
		{OrderItemID: a.ID, Quantity: 3},
	}, orderItems, remaining)
	assert.ErrorIs(t, err, ErrQuantityExceeded)

	// Splitting within the remaining rest is fine.
	_, items, err := PlanShipment([]ShipmentRequestItem{
		{OrderItemID: a.ID, Quantity: 2},
		{OrderItemID: a.ID, Quantity: 1},
	}, orderItems, remaining)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPlanShipmentMixedSellersRejected(t *testing.T) {
	a := &OrderItem{ID: uuid.NewV4(), SellerID: uuid.NewV4(), Quantity: 1}
	b := &OrderItem{ID: uuid.NewV4(), SellerID: uuid.NewV4(), Quantity: 1}
	orderItems := map[uuid.UUID]*OrderItem{a.ID: a, b.ID: b}
	remaining := map[uuid.UUID]int{a.ID: 1, b.ID: 1}

	_, _, err := PlanShipment([]ShipmentRequestItem{
		{OrderItemID: a.ID, Quantity: 1},
		{OrderItemID: b.ID, Quantity: 1},
	}, orderItems, remaining)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlanShipmentUnknownItem(t *testing.T) {
	_, _, err := PlanShipment([]ShipmentRequestItem{
		{OrderItemID: uuid.NewV4(), Quantity: 1},
	}, map[uuid.UUID]*OrderItem{}, map[uuid.UUID]int{})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = PlanShipment(nil, map[uuid.UUID]*OrderItem{}, map[uuid.UUID]int{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShipmentItemRejectsNonPositive(t *testing.T) {
	parent := &Shipment{Status: ShipmentPending}
	si := &ShipmentItem{}
	assert.ErrorIs(t, si.SetQuantity(parent, 0, 10, time.Now()), ErrValidation)
	assert.ErrorIs(t, si.SetQuantity(parent, -2, 10, time.Now()), ErrValidation)
}
