package models

import (
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTotalMatchesLineItems(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, UnitPrice: 9900},
	}
	require.NoError(t, ValidateTotal(19800, items))
	assert.Equal(t, 19800.0, LineTotal(items))
}

func TestValidateTotalMismatch(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, UnitPrice: 9900},
	}
	assert.ErrorIs(t, ValidateTotal(20000, items), ErrValidation)
}

func TestValidateTotalRejectsEmptyAndBadLines(t *testing.T) {
	assert.ErrorIs(t, ValidateTotal(0, nil), ErrValidation)

	assert.ErrorIs(t, ValidateTotal(0, []OrderItem{{Quantity: 0, UnitPrice: 100}}), ErrValidation)
	assert.ErrorIs(t, ValidateTotal(-100, []OrderItem{{Quantity: 1, UnitPrice: -100}}), ErrValidation)
}

func TestCartConsumeOnce(t *testing.T) {
	cart := &Cart{Status: CartOpen}
	require.NoError(t, cart.Consume())
	assert.Equal(t, CartOrdered, cart.Status)
	assert.ErrorIs(t, cart.Consume(), ErrCartConsumed)
}

func TestOrderVisibility(t *testing.T) {
	buyer := uuid.NewV4()
	seller := uuid.NewV4()
	stranger := uuid.NewV4()

	order := &Order{
		BuyerID: buyer,
		Items:   []OrderItem{{SellerID: seller}},
	}

	assert.True(t, order.VisibleTo(UserResponse{ID: buyer, Role: RoleBuyer}))
	assert.True(t, order.VisibleTo(UserResponse{ID: seller, Role: RoleSeller}))
	assert.True(t, order.VisibleTo(UserResponse{ID: stranger, Role: RoleAdmin}))

	// An unrelated seller or buyer sees nothing.
	assert.False(t, order.VisibleTo(UserResponse{ID: stranger, Role: RoleSeller}))
	assert.False(t, order.VisibleTo(UserResponse{ID: stranger, Role: RoleBuyer}))
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "seller", "buyer"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}
	_, err := ParseRole("superuser")
	assert.ErrorIs(t, err, ErrValidation)
}
