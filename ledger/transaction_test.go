package ledger_test

import (
	"errors"
	"testing"

	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
)

func TestTransactionLogRefusesDeletingLinkedRows(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 10)

	sales := ledger.NewSaleLedger(store)
	sale, err := sales.Create(ctx, &models.NewSale{
		InvoiceNumber: "SA-300",
		SaleDate:      day(0),
		Items: []models.NewSaleItem{{
			ProductId: product.ID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(150),
		}},
	})
	if err != nil {
		t.Fatalf("sale: %v", err)
	}

	transactions := fetchTransactions(t, db, pharmacyId)
	if len(transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(transactions))
	}

	log := ledger.NewTransactionLog(store)
	err = log.Delete(ctx, transactions[0].ID, pharmacyId)
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want validation (row owned by sale %d)", err, sale.ID)
	}

	// Deleting the sale takes the row with it.
	if err := sales.Delete(ctx, sale.ID, pharmacyId); err != nil {
		t.Fatalf("delete sale: %v", err)
	}
	if n := len(fetchTransactions(t, db, pharmacyId)); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestTransactionLogDeletesUnlinkedRows(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)

	manual := models.Transaction{
		PharmacyId:  pharmacyId,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(500),
		Date:        day(0),
		Description: "Generator fuel",
	}
	if err := db.Create(&manual).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	log := ledger.NewTransactionLog(store)
	if err := log.Delete(ctx, manual.ID, pharmacyId); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := len(fetchTransactions(t, db, pharmacyId)); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestTransactionLogListFiltersByTypeAndDate(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)

	rows := []models.Transaction{
		{PharmacyId: pharmacyId, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(100), Date: day(0)},
		{PharmacyId: pharmacyId, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(200), Date: day(5)},
		{PharmacyId: pharmacyId, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(300), Date: day(10)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed transaction %d: %v", i, err)
		}
	}

	log := ledger.NewTransactionLog(store)

	income := models.TransactionTypeIncome
	got, err := log.List(ctx, pharmacyId, models.TransactionFilter{Type: &income})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("income rows = %d, want 2", len(got))
	}

	got, err = log.List(ctx, pharmacyId, models.TransactionFilter{
		StartDate: utils.Ptr(day(3)),
		EndDate:   utils.Ptr(day(7)),
	})
	if err != nil {
		t.Fatalf("List windowed: %v", err)
	}
	if len(got) != 1 || !got[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("windowed rows = %+v, want the 200 expense", got)
	}

	// Empty result is a non-nil empty slice.
	got, err = log.List(ctx, pharmacyId, models.TransactionFilter{StartDate: utils.Ptr(day(100))})
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("empty list = %v, want non-nil empty", got)
	}
}
