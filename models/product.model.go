package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Price     float64   `gorm:"not null"`
	Currency  string    `gorm:"type:varchar(10);not null;default:'KRW'"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	SoftDeletable
	Tags []ProductTag `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// ProductTag links a product to a tag. Soft-deletable: unlinking keeps the
// row for audit, repeating the unlink fails.
type ProductTag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	SoftDeletable
}

// ProductBundle groups products sold together under one seller.
type ProductBundle struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	SellerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Products  []*Product `gorm:"many2many:product_bundle_items"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	SoftDeletable
}
