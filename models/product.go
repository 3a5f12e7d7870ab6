package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries the authoritative on-hand counter. CurrentStock is written
// only by the purchase/sale ledgers; catalog edits must never touch it.
type Product struct {
	ID           int             `gorm:"primary_key" json:"id"`
	PharmacyId   string          `gorm:"size:36;not null;uniqueIndex:idx_products_pharmacy_sku" json:"pharmacy_id"`
	Sku          string          `gorm:"size:100;not null;uniqueIndex:idx_products_pharmacy_sku" json:"sku"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Category     string          `gorm:"size:100;index" json:"category"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	RetailPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"retail_price"`
	CurrentStock int             `gorm:"not null;default:0" json:"current_stock"`
	ReorderLevel int             `gorm:"not null;default:0" json:"reorder_level"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Sku          string          `json:"sku" binding:"required" validate:"required"`
	Name         string          `json:"name" binding:"required" validate:"required"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
}

// UpdateProduct intentionally has no stock field. Stock moves only through
// the ledgers.
type UpdateProduct struct {
	Sku          string          `json:"sku" binding:"required" validate:"required"`
	Name         string          `json:"name" binding:"required" validate:"required"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
}

// IsLowStock classifies the product against its reorder threshold.
func (p Product) IsLowStock() bool {
	return p.CurrentStock <= p.ReorderLevel
}
