package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID            int             `gorm:"primary_key" json:"id"`
	PharmacyId    string          `gorm:"index;size:36;not null" json:"pharmacy_id"`
	InvoiceNumber string          `gorm:"size:100;not null" json:"invoice_number"`
	SaleDate      time.Time       `gorm:"not null" json:"sale_date"`
	CustomerName  string          `gorm:"size:255" json:"customer_name"`
	CustomerPhone string          `gorm:"size:50" json:"customer_phone"`
	CustomerEmail string          `gorm:"size:255" json:"customer_email"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Discount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax"`
	PaymentStatus PaymentStatus   `gorm:"size:20;not null;default:PAID" json:"payment_status"`
	Items         []SaleItem      `gorm:"foreignKey:SaleId" json:"items"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type SaleItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	SaleId      int             `gorm:"index;not null" json:"sale_id"`
	ProductId   int             `gorm:"index;not null" json:"product_id"`
	Product     Product         `json:"product"`
	BatchItemId *int            `gorm:"index;default:null" json:"batch_item_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSale struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required" validate:"required"`
	SaleDate      time.Time       `json:"sale_date" binding:"required" validate:"required"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	PaymentStatus PaymentStatus   `json:"payment_status" validate:"omitempty,oneof=PAID PARTIAL PENDING CANCELLED"`
	Items         []NewSaleItem   `json:"items" binding:"required" validate:"required,min=1,dive"`
}

type NewSaleItem struct {
	ProductId  int              `json:"product_id" validate:"required,gt=0"`
	Quantity   int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	// The ledger never picks a batch on its own (no implicit FEFO); callers
	// that want lot tracking name the batch explicitly.
	BatchItemId *int `json:"batch_item_id"`
}

/// UpdateSale mirrors UpdatePurchase: header replaced unconditionally, a
// non-nil item set reverts old stock/batch effects and applies the new ones
// with full validation.
type UpdateSale struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required" validate:"required"`
	SaleDate      time.Time       `json:"sale_date" binding:"required" validate:"required"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	PaymentStatus PaymentStatus   `json:"payment_status" validate:"omitempty,oneof=PAID PARTIAL PENDING CANCELLED"`
	Items         []NewSaleItem   `json:"items" validate:"omitempty,min=1,dive"`
}

type SalesReportFilter struct {
	StartDate *time.Time `form:"start_date" json:"start_date"`
	EndDate   *time.Time `form:"end_date" json:"end_date"`
	ProductId *int       `form:"product_id" json:"product_id"`
	Category  string     `form:"category" json:"category"`
}
