package models

import "time"

// BatchItem is an expiry-dated lot of a product. A batch exists only when the
// purchase line that brought the stock in carried both a batch number and an
// expiry date; stock without a batch is untracked at lot granularity.
//
// Invariant: 0 <= CurrentQuantity <= InitialQuantity.
type BatchItem struct {
	ID              int       `gorm:"primary_key" json:"id"`
	PharmacyId      string    `gorm:"index;size:36;not null" json:"pharmacy_id"`
	ProductId       int       `gorm:"index;not null" json:"product_id"`
	PurchaseItemId  *int      `gorm:"index;default:null" json:"purchase_item_id"`
	BatchNumber     string    `gorm:"size:100;not null" json:"batch_number"`
	ExpiryDate      time.Time `gorm:"not null" json:"expiry_date"`
	InitialQuantity int       `gorm:"not null" json:"initial_quantity"`
	CurrentQuantity int       `gorm:"not null" json:"current_quantity"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
