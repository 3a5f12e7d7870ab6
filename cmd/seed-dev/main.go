// seed-dev populates a local database with a demo pharmacy, a supplier, a
// small product catalog and one purchase/sale pair so the API is usable
// straight after startup.
//
// Usage:
//
//	DB_DRIVER=sqlite DB_PATH=pharmacy.db go run ./cmd/seed-dev
//
// Running it twice is safe: the pharmacy is matched by license number,
// products by SKU, and documents are only created when the pharmacy has none.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const demoLicense = "DEMO-0001"

func main() {
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	if err := models.MigrateTable(db); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	ctx := utils.SetSkipTenantScopeInContext(context.Background(), true)

	pharmacy, err := ensurePharmacy(ctx, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed pharmacy: %v\n", err)
		os.Exit(1)
	}
	supplier, err := ensureSupplier(ctx, db, pharmacy.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed supplier: %v\n", err)
		os.Exit(1)
	}
	if err := ensureProducts(ctx, db, pharmacy.ID); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed products: %v\n", err)
		os.Exit(1)
	}
	if err := ensureDocuments(db, pharmacy.ID, supplier.ID); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed documents: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded demo pharmacy %s (send X-Pharmacy-Id: %s)\n", pharmacy.Name, pharmacy.ID)
}

func ensurePharmacy(ctx context.Context, db *gorm.DB) (*models.Pharmacy, error) {
	var pharmacy models.Pharmacy
	err := db.WithContext(ctx).Where("license_number = ?", demoLicense).First(&pharmacy).Error
	if err == nil {
		return &pharmacy, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pharmacy = models.Pharmacy{
		Name:          "Demo Pharmacy",
		LicenseNumber: demoLicense,
		Address:       "42 Main Street",
		Phone:         "+95973000000",
	}
	if err := db.WithContext(ctx).Create(&pharmacy).Error; err != nil {
		return nil, err
	}
	return &pharmacy, nil
}

func ensureSupplier(ctx context.Context, db *gorm.DB, pharmacyId string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).First(&supplier).Error
	if err == nil {
		return &supplier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	supplier = models.Supplier{
		PharmacyId: pharmacyId,
		Name:       "Medilink Distribution",
		Phone:      "+95973000001",
		Email:      "orders@medilink.example",
	}
	if err := db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func ensureProducts(ctx context.Context, db *gorm.DB, pharmacyId string) error {
	products := []models.Product{
		{Sku: "PARA-500", Name: "Paracetamol 500mg", Category: "Analgesic", CostPrice: decimal.NewFromInt(100), RetailPrice: decimal.NewFromInt(150), ReorderLevel: 50},
		{Sku: "AMOX-250", Name: "Amoxicillin 250mg", Category: "Antibiotic", CostPrice: decimal.NewFromInt(300), RetailPrice: decimal.NewFromInt(450), ReorderLevel: 30},
		{Sku: "CETI-10", Name: "Cetirizine 10mg", Category: "Antihistamine", CostPrice: decimal.NewFromInt(80), RetailPrice: decimal.NewFromInt(120), ReorderLevel: 40},
		{Sku: "ORS-20", Name: "Oral Rehydration Salts", Category: "Electrolyte", CostPrice: decimal.NewFromInt(50), RetailPrice: decimal.NewFromInt(90), ReorderLevel: 100},
	}

	for _, p := range products {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Product{}).
			Where("pharmacy_id = ? AND sku = ?", pharmacyId, p.Sku).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		p.PharmacyId = pharmacyId
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// ensureDocuments runs one purchase and one sale through the ledgers so the
// demo pharmacy has stock, a batch and both transaction types on day one.
func ensureDocuments(db *gorm.DB, pharmacyId string, supplierId int) error {
	ctx := utils.SetPharmacyIdInContext(context.Background(), pharmacyId)

	var purchases int64
	if err := db.WithContext(ctx).Model(&models.Purchase{}).
		Where("pharmacy_id = ?", pharmacyId).Count(&purchases).Error; err != nil {
		return err
	}
	if purchases > 0 {
		return nil
	}

	var para, amox models.Product
	if err := db.WithContext(ctx).Where("pharmacy_id = ? AND sku = ?", pharmacyId, "PARA-500").First(&para).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("pharmacy_id = ? AND sku = ?", pharmacyId, "AMOX-250").First(&amox).Error; err != nil {
		return err
	}

	store := storage.NewGormStore(db)
	batchNumber := "B-DEMO-01"
	expiry := time.Now().UTC().AddDate(0, 6, 0)

	_, err := ledger.NewPurchaseLedger(store).Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-DEMO-001",
		PurchaseDate:  time.Now().UTC().AddDate(0, 0, -7),
		SupplierId:    supplierId,
		TotalAmount:   decimal.NewFromInt(25000),
		PaymentStatus: models.PaymentStatusPaid,
		Notes:         "opening stock",
		Items: []models.NewPurchaseItem{
			{ProductId: para.ID, Quantity: 100, UnitPrice: decimal.NewFromInt(100), BatchNumber: &batchNumber, ExpiryDate: &expiry},
			{ProductId: amox.ID, Quantity: 50, UnitPrice: decimal.NewFromInt(300)},
		},
	})
	if err != nil {
		return err
	}

	_, err = ledger.NewSaleLedger(store).Create(ctx, &models.NewSale{
		InvoiceNumber: "INV-DEMO-001",
		SaleDate:      time.Now().UTC().AddDate(0, 0, -1),
		CustomerName:  "Walk-in",
		TotalAmount:   decimal.NewFromInt(1500),
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.NewSaleItem{
			{ProductId: para.ID, Quantity: 10, UnitPrice: decimal.NewFromInt(150)},
		},
	})
	return err
}
