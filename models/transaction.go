package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the accounting projection of an inventory movement: INCOME
// for sales, EXPENSE for paid/partially-paid purchases. A row linked to a
// purchase or sale is owned by that ledger entry and is never deleted
// directly; PurchaseId and SaleId are mutually exclusive.
type Transaction struct {
	ID          int             `gorm:"primary_key" json:"id"`
	PharmacyId  string          `gorm:"index;size:36;not null" json:"pharmacy_id"`
	Type        TransactionType `gorm:"size:20;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"size:255" json:"description"`
	PurchaseId  *int            `gorm:"uniqueIndex;default:null" json:"purchase_id"`
	SaleId      *int            `gorm:"uniqueIndex;default:null" json:"sale_id"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Linked reports whether the row is owned by a ledger entry.
func (t Transaction) Linked() bool {
	return t.PurchaseId != nil || t.SaleId != nil
}

type TransactionFilter struct {
	StartDate *time.Time       `form:"start_date" json:"start_date"`
	EndDate   *time.Time       `form:"end_date" json:"end_date"`
	Type      *TransactionType `form:"type" json:"type"`
}
