package models

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationApprove(t *testing.T) {
	admin := uuid.NewV4()
	c := &Cancellation{Status: CancellationRequested, Reason: "wrong size"}

	require.NoError(t, c.Decide(CancellationApproved, "approved by support", admin, time.Now().UTC()))
	assert.Equal(t, CancellationApproved, c.Status)
	assert.Equal(t, "approved by support", c.Reason)
	require.NotNil(t, c.DecidedBy)
	assert.Equal(t, admin, *c.DecidedBy)
	assert.NotNil(t, c.DecidedAt)
}

func TestCancellationRejectIsTerminal(t *testing.T) {
	c := &Cancellation{Status: CancellationRequested}
	require.NoError(t, c.Decide(CancellationRejected, "", uuid.NewV4(), time.Now()))

	// No re-approval, no re-rejection, no reversion.
	assert.ErrorIs(t, c.Decide(CancellationApproved, "", uuid.NewV4(), time.Now()), ErrFrozen)
	assert.ErrorIs(t, c.Decide(CancellationRejected, "", uuid.NewV4(), time.Now()), ErrFrozen)
	assert.ErrorIs(t, c.Decide(CancellationRequested, "", uuid.NewV4(), time.Now()), ErrFrozen)
	assert.Equal(t, CancellationRejected, c.Status)
}

func TestCancellationDecideRequestedInvalid(t *testing.T) {
	c := &Cancellation{Status: CancellationRequested}
	assert.ErrorIs(t, c.Decide(CancellationRequested, "", uuid.NewV4(), time.Now()), ErrInvalidTransition)
	assert.Equal(t, CancellationRequested, c.Status)
}

func TestCancellationDecideKeepsReasonWhenEmpty(t *testing.T) {
	c := &Cancellation{Status: CancellationRequested, Reason: "changed my mind"}
	require.NoError(t, c.Decide(CancellationApproved, "", uuid.NewV4(), time.Now()))
	assert.Equal(t, "changed my mind", c.Reason)
}

func TestCancellationReasonFrozenAfterDecision(t *testing.T) {
	c := &Cancellation{Status: CancellationRequested, Reason: "original"}
	require.NoError(t, c.UpdateReason("edited while requested"))

	require.NoError(t, c.Decide(CancellationApproved, "", uuid.NewV4(), time.Now()))
	assert.ErrorIs(t, c.UpdateReason("sneaky edit"), ErrFrozen)
	assert.Equal(t, "edited while requested", c.Reason)
}
