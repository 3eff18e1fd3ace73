package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GraftProduct is immutable pricing reference data, keyed by the
// composite of manufacturer, product name, and billing code.
type GraftProduct struct {
	Id               string  `json:"id" gorm:"primaryKey"`
	Manufacturer     string  `json:"manufacturer" gorm:"not null;uniqueIndex:idx_graft_products_identity,priority:1"`
	ProductName      string  `json:"product_name" gorm:"not null;uniqueIndex:idx_graft_products_identity,priority:2"`
	BillingCode      string  `json:"billing_code" gorm:"not null;uniqueIndex:idx_graft_products_identity,priority:3"`
	PricePerUnitArea float64 `json:"price_per_unit_area" gorm:"type:numeric(12,2)"`
	Active           bool    `json:"-"`
}

func (product *GraftProduct) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}
