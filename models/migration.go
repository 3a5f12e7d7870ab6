package models

import "gorm.io/gorm"

// MigrateTable syncs the schema. Order matters for FK targets.
func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&Pharmacy{},
		&Supplier{},
		&Product{},
		&Purchase{},
		&PurchaseItem{},
		&BatchItem{},
		&Sale{},
		&SaleItem{},
		&Transaction{},
	)
}
