package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID            int             `gorm:"primary_key" json:"id"`
	PharmacyId    string          `gorm:"index;size:36;not null" json:"pharmacy_id"`
	SupplierId    int             `gorm:"index;not null" json:"supplier_id"`
	InvoiceNumber string          `gorm:"size:100;not null" json:"invoice_number"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchase_date"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaymentStatus PaymentStatus   `gorm:"size:20;not null;default:PENDING" json:"payment_status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseId" json:"items"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseItem struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PurchaseId int             `gorm:"index;not null" json:"purchase_id"`
	ProductId  int             `gorm:"index;not null" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchase struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required" validate:"required"`
	PurchaseDate  time.Time         `json:"purchase_date" binding:"required" validate:"required"`
	SupplierId    int               `json:"supplier_id" validate:"gte=0"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentStatus PaymentStatus     `json:"payment_status" binding:"required" validate:"required,oneof=PAID PARTIAL PENDING CANCELLED"`
	Notes         string            `json:"notes"`
	Items         []NewPurchaseItem `json:"items" binding:"required" validate:"required,min=1,dive"`
}

type NewPurchaseItem struct {
	ProductId  int              `json:"product_id" validate:"required,gt=0"`
	Quantity   int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	// A batch is registered only when BOTH fields are present.
	BatchNumber *string    `json:"batch_number"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

// UpdatePurchase replaces the header unconditionally. Items == nil leaves the
// item set (and its stock/batch effects) untouched; a non-nil slice reverts
// every old item and applies the new ones from scratch.
type UpdatePurchase struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required" validate:"required"`
	PurchaseDate  time.Time         `json:"purchase_date" binding:"required" validate:"required"`
	SupplierId    int               `json:"supplier_id" validate:"gte=0"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentStatus PaymentStatus     `json:"payment_status" binding:"required" validate:"required,oneof=PAID PARTIAL PENDING CANCELLED"`
	Notes         string            `json:"notes"`
	Items         []NewPurchaseItem `json:"items" validate:"omitempty,min=1,dive"`
}

type PurchaseReportFilter struct {
	StartDate  *time.Time `form:"start_date" json:"start_date"`
	EndDate    *time.Time `form:"end_date" json:"end_date"`
	SupplierId *int       `form:"supplier_id" json:"supplier_id"`
	ProductId  *int       `form:"product_id" json:"product_id"`
}
