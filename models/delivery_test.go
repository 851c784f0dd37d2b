package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryTransitions(t *testing.T) {
	d := &Delivery{Status: DeliveryPrepared}

	require.NoError(t, d.Transition(DeliveryDispatched))
	require.NoError(t, d.Transition(DeliveryDelivered))
	assert.True(t, d.Terminal())

	assert.ErrorIs(t, d.Transition(DeliveryDispatched), ErrInvalidTransition)
	assert.ErrorIs(t, d.Transition(DeliveryPrepared), ErrInvalidTransition)
}

func TestDeliveryNoSkip(t *testing.T) {
	d := &Delivery{Status: DeliveryPrepared}
	assert.ErrorIs(t, d.Transition(DeliveryDelivered), ErrInvalidTransition)
	assert.Equal(t, DeliveryPrepared, d.Status)
}

func TestDeliveryEraseOnlyWhilePrepared(t *testing.T) {
	now := time.Now().UTC()

	d := &Delivery{Status: DeliveryPrepared}
	require.NoError(t, d.EraseDelivery(now))
	assert.ErrorIs(t, d.EraseDelivery(now), ErrAlreadyDeleted)

	dispatched := &Delivery{Status: DeliveryDispatched}
	assert.ErrorIs(t, dispatched.EraseDelivery(now), ErrInvalidTransition)
	assert.False(t, dispatched.IsDeleted())

	delivered := &Delivery{Status: DeliveryDelivered}
	assert.ErrorIs(t, delivered.EraseDelivery(now), ErrInvalidTransition)
}

func TestParseDeliveryStatus(t *testing.T) {
	_, err := ParseDeliveryStatus("lost")
	assert.ErrorIs(t, err, ErrValidation)

	st, err := ParseDeliveryStatus("dispatched")
	require.NoError(t, err)
	assert.Equal(t, DeliveryDispatched, st)
}
