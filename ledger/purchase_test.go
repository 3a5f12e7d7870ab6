package ledger_test

import (
	"errors"
	"testing"

	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
)

func TestPurchaseCreateIncrementsStockAndRegistersBatch(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	supplier := createTestSupplier(t, db, pharmacyId, "Alpha Pharma")
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 10)

	purchases := ledger.NewPurchaseLedger(store)
	got, err := purchases.Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-001",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.NewPurchaseItem{{
			ProductId:   product.ID,
			Quantity:    20,
			UnitPrice:   decimal.NewFromInt(100),
			BatchNumber: utils.Ptr("B1"),
			ExpiryDate:  utils.Ptr(day(120)),
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	mustDecimalEq(t, got.TotalAmount, "2000", "total amount")

	if stock := fetchProduct(t, db, product.ID).CurrentStock; stock != 30 {
		t.Fatalf("stock = %d, want 30", stock)
	}

	batches := fetchBatches(t, db, product.ID)
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}
	if batches[0].BatchNumber != "B1" || batches[0].CurrentQuantity != 20 || batches[0].InitialQuantity != 20 {
		t.Fatalf("unexpected batch %+v", batches[0])
	}
	if batches[0].PurchaseItemId == nil || *batches[0].PurchaseItemId != got.Items[0].ID {
		t.Fatalf("batch not linked to purchase item")
	}

	transactions := fetchTransactions(t, db, pharmacyId)
	if len(transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(transactions))
	}
	if transactions[0].Type != models.TransactionTypeExpense {
		t.Fatalf("transaction type = %s, want EXPENSE", transactions[0].Type)
	}
	mustDecimalEq(t, transactions[0].Amount, "2000", "transaction amount")
}

func TestPurchaseCreatePendingHasNoTransaction(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	supplier := createTestSupplier(t, db, pharmacyId, "Alpha Pharma")
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 0)

	purchases := ledger.NewPurchaseLedger(store)
	_, err := purchases.Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-002",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.NewPurchaseItem{{
			ProductId: product.ID,
			Quantity:  5,
			UnitPrice: decimal.NewFromInt(100),
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n := len(fetchTransactions(t, db, pharmacyId)); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
	// No batch number given, no batch row.
	if n := len(fetchBatches(t, db, product.ID)); n != 0 {
		t.Fatalf("batches = %d, want 0", n)
	}
	if stock := fetchProduct(t, db, product.ID).CurrentStock; stock != 5 {
		t.Fatalf("stock = %d, want 5", stock)
	}
}

func TestPurchaseCreateUnknownProductRollsBack(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	supplier := createTestSupplier(t, db, pharmacyId, "Alpha Pharma")
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 10)

	purchases := ledger.NewPurchaseLedger(store)
	_, err := purchases.Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-003",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.NewPurchaseItem{
			{ProductId: product.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
			{ProductId: 99999, Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want not-found", err)
	}

	// The first line's effects must not survive the rollback.
	if stock := fetchProduct(t, db, product.ID).CurrentStock; stock != 10 {
		t.Fatalf("stock = %d, want 10 after rollback", stock)
	}
	if n := countRows(t, db, &models.Purchase{}); n != 0 {
		t.Fatalf("purchases = %d, want 0 after rollback", n)
	}
	if n := countRows(t, db, &models.PurchaseItem{}); n != 0 {
		t.Fatalf("purchase items = %d, want 0 after rollback", n)
	}
}

func TestPurchaseUpdateReappliesItemsAndReconcilesTransaction(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	supplier := createTestSupplier(t, db, pharmacyId, "Alpha Pharma")
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 10)

	purchases := ledger.NewPurchaseLedger(store)
	created, err := purchases.Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-004",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.NewPurchaseItem{{
			ProductId:   product.ID,
			Quantity:    20,
			UnitPrice:   decimal.NewFromInt(100),
			BatchNumber: utils.Ptr("B1"),
			ExpiryDate:  utils.Ptr(day(120)),
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// New item set: quantity 8, no batch. Status flips to PAID so a
	// transaction must appear.
	updated, err := purchases.Update(ctx, created.ID, pharmacyId, &models.UpdatePurchase{
		InvoiceNumber: "PO-004-R1",
		PurchaseDate:  day(1),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.NewPurchaseItem{{
			ProductId: product.ID,
			Quantity:  8,
			UnitPrice: decimal.NewFromInt(110),
		}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.InvoiceNumber != "PO-004-R1" {
		t.Fatalf("invoice = %s, want PO-004-R1", updated.InvoiceNumber)
	}
	mustDecimalEq(t, updated.TotalAmount, "880", "total amount")

	// 10 opening + 20 reverted - 20 + 8 applied.
	if stock := fetchProduct(t, db, product.ID).CurrentStock; stock != 18 {
		t.Fatalf("stock = %d, want 18", stock)
	}
	// The old item's batch is gone; the new item registered none.
	if n := len(fetchBatches(t, db, product.ID)); n != 0 {
		t.Fatalf("batches = %d, want 0", n)
	}

	transactions := fetchTransactions(t, db, pharmacyId)
	if len(transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(transactions))
	}
	mustDecimalEq(t, transactions[0].Amount, "880", "transaction amount")

	// Back to CANCELLED: the transaction must go away.
	if _, err := purchases.Update(ctx, created.ID, pharmacyId, &models.UpdatePurchase{
		InvoiceNumber: "PO-004-R2",
		PurchaseDate:  day(1),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusCancelled,
	}); err != nil {
		t.Fatalf("Update to cancelled: %v", err)
	}
	if n := len(fetchTransactions(t, db, pharmacyId)); n != 0 {
		t.Fatalf("transactions = %d, want 0 after cancel", n)
	}
	// Items untouched on a header-only update.
	if stock := fetchProduct(t, db, product.ID).CurrentStock; stock != 18 {
		t.Fatalf("stock = %d, want 18 after header-only update", stock)
	}
}

func TestPurchaseDeleteRevertsEverything(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	supplier := createTestSupplier(t, db, pharmacyId, "Alpha Pharma")
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 10)

	purchases := ledger.NewPurchaseLedger(store)
	created, err := purchases.Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-005",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.NewPurchaseItem{{
			ProductId:   product.ID,
			Quantity:    20,
			UnitPrice:   decimal.NewFromInt(100),
			BatchNumber: utils.Ptr("B1"),
			ExpiryDate:  utils.Ptr(day(120)),
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := purchases.Delete(ctx, created.ID, pharmacyId); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if stock := fetchProduct(t, db, product.ID).CurrentStock; stock != 10 {
		t.Fatalf("stock = %d, want 10", stock)
	}
	if n := countRows(t, db, &models.Purchase{}); n != 0 {
		t.Fatalf("purchases = %d, want 0", n)
	}
	if n := countRows(t, db, &models.PurchaseItem{}); n != 0 {
		t.Fatalf("purchase items = %d, want 0", n)
	}
	if n := len(fetchBatches(t, db, product.ID)); n != 0 {
		t.Fatalf("batches = %d, want 0", n)
	}
	if n := len(fetchTransactions(t, db, pharmacyId)); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestPurchaseDeleteUnknownIdIsNotFound(t *testing.T) {
	ctx, store, _, pharmacyId := setupLedgerTest(t)
	purchases := ledger.NewPurchaseLedger(store)

	err := purchases.Delete(ctx, 12345, pharmacyId)
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestPurchaseUpdateRefusedWhenImmutable(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	supplier := createTestSupplier(t, db, pharmacyId, "Alpha Pharma")
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 0)

	purchases := ledger.NewPurchaseLedger(store)
	created, err := purchases.Create(ctx, &models.NewPurchase{
		InvoiceNumber: "PO-006",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.NewPurchaseItem{{
			ProductId: product.ID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(100),
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Setenv("STRICT_LEDGER_IMMUTABLE", "true")
	_, err = purchases.Update(ctx, created.ID, pharmacyId, &models.UpdatePurchase{
		InvoiceNumber: "PO-006-R1",
		PurchaseDate:  day(0),
		SupplierId:    supplier.ID,
		PaymentStatus: models.PaymentStatusPaid,
	})
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
