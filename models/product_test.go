package models

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductBundleEraseSingleUse(t *testing.T) {
	now := time.Now().UTC()
	bundle := &ProductBundle{SellerID: uuid.NewV4(), Name: "winter set"}

	require.NoError(t, bundle.Erase(now))
	assert.True(t, bundle.IsDeleted())
	assert.ErrorIs(t, bundle.Erase(now.Add(time.Second)), ErrAlreadyDeleted)
}

func TestProductTagEraseSingleUse(t *testing.T) {
	now := time.Now().UTC()
	link := &ProductTag{ProductID: uuid.NewV4(), TagID: uuid.NewV4()}

	require.NoError(t, link.Erase(now))
	assert.ErrorIs(t, link.Erase(now), ErrAlreadyDeleted)
}
