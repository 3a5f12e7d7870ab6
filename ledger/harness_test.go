package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupLedgerTest opens a throwaway sqlite database, migrates the schema and
// seeds one pharmacy. Redis stays unconfigured so the pharmacy lock and the
// report cache degrade to no-ops.
func setupLedgerTest(t *testing.T) (context.Context, storage.Store, *gorm.DB, string) {
	t.Helper()

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "ledger_test.db"))
	t.Setenv("REPORT_CACHE_DISABLED", "")
	t.Setenv("STRICT_LEDGER_IMMUTABLE", "")

	db, err := config.OpenDatabase()
	if err != nil {
		t.Fatalf("OpenDatabase: %v", err)
	}
	if err := models.MigrateTable(db); err != nil {
		t.Fatalf("MigrateTable: %v", err)
	}

	pharmacy := models.Pharmacy{
		Name:          "Test Pharmacy",
		LicenseNumber: "TEST-" + t.Name(),
	}
	if err := db.Create(&pharmacy).Error; err != nil {
		t.Fatalf("create pharmacy: %v", err)
	}

	ctx := utils.SetPharmacyIdInContext(context.Background(), pharmacy.ID)
	return ctx, storage.NewGormStore(db), db, pharmacy.ID
}

func createTestSupplier(t *testing.T, db *gorm.DB, pharmacyId string, name string) *models.Supplier {
	t.Helper()
	supplier := models.Supplier{
		PharmacyId: pharmacyId,
		Name:       name,
	}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	return &supplier
}

func createTestProduct(t *testing.T, db *gorm.DB, pharmacyId string, sku string, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		PharmacyId:   pharmacyId,
		Sku:          sku,
		Name:         "Product " + sku,
		Category:     "General",
		CostPrice:    decimal.NewFromInt(100),
		RetailPrice:  decimal.NewFromInt(150),
		CurrentStock: stock,
		ReorderLevel: 5,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return &product
}

func fetchProduct(t *testing.T, db *gorm.DB, id int) *models.Product {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("fetch product %d: %v", id, err)
	}
	return &product
}

func fetchBatches(t *testing.T, db *gorm.DB, productId int) []models.BatchItem {
	t.Helper()
	var batches []models.BatchItem
	if err := db.Where("product_id = ?", productId).Order("id asc").Find(&batches).Error; err != nil {
		t.Fatalf("fetch batches for product %d: %v", productId, err)
	}
	return batches
}

func fetchTransactions(t *testing.T, db *gorm.DB, pharmacyId string) []models.Transaction {
	t.Helper()
	var transactions []models.Transaction
	if err := db.Where("pharmacy_id = ?", pharmacyId).Order("id asc").Find(&transactions).Error; err != nil {
		t.Fatalf("fetch transactions: %v", err)
	}
	return transactions
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func day(offset int) time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func mustDecimalEq(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", label, got.String(), want)
	}
}
