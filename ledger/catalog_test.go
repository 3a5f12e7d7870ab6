package ledger_test

import (
	"errors"
	"testing"

	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
)

func TestCatalogCreateRejectsDuplicateSku(t *testing.T) {
	ctx, store, _, _ := setupLedgerTest(t)
	catalog := ledger.NewCatalog(store)

	if _, err := catalog.Create(ctx, &models.NewProduct{Sku: "PARA-500", Name: "Paracetamol"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := catalog.Create(ctx, &models.NewProduct{Sku: "PARA-500", Name: "Paracetamol Again"})
	if !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestCatalogUpdateNeverTouchesStock(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 42)
	catalog := ledger.NewCatalog(store)

	updated, err := catalog.Update(ctx, product.ID, pharmacyId, &models.UpdateProduct{
		Sku:          "PARA-500",
		Name:         "Paracetamol 500mg (new pack)",
		Category:     "Analgesic",
		CostPrice:    decimal.NewFromInt(110),
		RetailPrice:  decimal.NewFromInt(160),
		ReorderLevel: 10,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CurrentStock != 42 {
		t.Fatalf("stock = %d, want 42 untouched", updated.CurrentStock)
	}
	if updated.Name != "Paracetamol 500mg (new pack)" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
}

func TestCatalogUpdateSkuConflictAgainstOtherProduct(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	createTestProduct(t, db, pharmacyId, "PARA-500", 0)
	amox := createTestProduct(t, db, pharmacyId, "AMOX-250", 0)
	catalog := ledger.NewCatalog(store)

	_, err := catalog.Update(ctx, amox.ID, pharmacyId, &models.UpdateProduct{
		Sku:  "PARA-500",
		Name: "Amoxicillin",
	})
	if !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}

	// Keeping its own sku is not a conflict.
	if _, err := catalog.Update(ctx, amox.ID, pharmacyId, &models.UpdateProduct{
		Sku:  "AMOX-250",
		Name: "Amoxicillin 250mg",
	}); err != nil {
		t.Fatalf("self-sku update: %v", err)
	}
}

func TestCatalogListLowStock(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	low := createTestProduct(t, db, pharmacyId, "PARA-500", 5) // reorder level 5
	createTestProduct(t, db, pharmacyId, "AMOX-250", 50)
	catalog := ledger.NewCatalog(store)

	products, err := catalog.ListLowStock(ctx, pharmacyId)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Fatalf("low stock = %+v, want only %d", products, low.ID)
	}
	if !products[0].IsLowStock() {
		t.Fatalf("IsLowStock must hold at the reorder boundary")
	}
}

func TestCatalogDeleteUnknownIsNotFound(t *testing.T) {
	ctx, store, _, pharmacyId := setupLedgerTest(t)
	catalog := ledger.NewCatalog(store)

	if err := catalog.Delete(ctx, 4242, pharmacyId); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want not-found", err)
	}
}
