package utils

import (
	"testing"

	"github.com/k3a/html2text"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"

	"shopcore/models"
)

func TestBuildOrderConfirmation(t *testing.T) {
	order := &models.Order{
		ID:          uuid.NewV4(),
		TotalAmount: 19800,
		Currency:    "KRW",
		Items: []models.OrderItem{
			{Title: "Wool socks", Quantity: 2, FinalPrice: 19800},
		},
	}

	html := BuildOrderConfirmation(order)
	assert.Contains(t, html, "Wool socks")
	assert.Contains(t, html, "19800.00")
	assert.Contains(t, html, order.ID.String())

	// The plain-text alternative keeps the essentials.
	plain := html2text.HTML2Text(html)
	assert.Contains(t, plain, "Wool socks")
}
