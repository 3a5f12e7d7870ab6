package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

func seedBatch(t *testing.T, db *gorm.DB, pharmacyId string, productId int, number string, expiry time.Time, qty int) *models.BatchItem {
	t.Helper()
	batch := models.BatchItem{
		PharmacyId:      pharmacyId,
		ProductId:       productId,
		BatchNumber:     number,
		ExpiryDate:      expiry,
		InitialQuantity: qty,
		CurrentQuantity: qty,
	}
	if err := db.Create(&batch).Error; err != nil {
		t.Fatalf("seed batch %s: %v", number, err)
	}
	return &batch
}

func TestExpiryReportClassifiesAndOrdersByExpiry(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	product := createTestProduct(t, db, pharmacyId, "PARA-500", 100)

	now := time.Now()
	seedBatch(t, db, pharmacyId, product.ID, "FRESH", now.AddDate(0, 0, 90), 10)
	seedBatch(t, db, pharmacyId, product.ID, "SOON", now.AddDate(0, 0, 10), 10)
	seedBatch(t, db, pharmacyId, product.ID, "GONE", now.AddDate(0, 0, -5), 10)
	seedBatch(t, db, pharmacyId, product.ID, "FAR", now.AddDate(0, 0, 300), 10)
	// Depleted batches never appear.
	depleted := seedBatch(t, db, pharmacyId, product.ID, "EMPTY", now.AddDate(0, 0, 5), 10)
	if err := db.Model(&models.BatchItem{}).Where("id = ?", depleted.ID).
		UpdateColumn("current_quantity", 0).Error; err != nil {
		t.Fatalf("deplete batch: %v", err)
	}

	registry := ledger.NewBatchRegistry(store)
	rows, err := registry.ExpiryReport(ctx, pharmacyId, 0)
	if err != nil {
		t.Fatalf("ExpiryReport: %v", err)
	}

	// FAR (300d) is beyond the 180-day default; EMPTY is depleted.
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	wantOrder := []string{"GONE", "SOON", "FRESH"}
	wantStatus := []models.ExpiryStatus{
		models.ExpiryStatusExpired,
		models.ExpiryStatusExpiringSoon,
		models.ExpiryStatusNormal,
	}
	for i, row := range rows {
		if row.Batch.BatchNumber != wantOrder[i] {
			t.Fatalf("row %d = %s, want %s (soonest first)", i, row.Batch.BatchNumber, wantOrder[i])
		}
		if row.Status != wantStatus[i] {
			t.Fatalf("row %d status = %s, want %s", i, row.Status, wantStatus[i])
		}
	}
	if rows[0].DaysToExpiry > 0 {
		t.Fatalf("expired batch days = %d, want <= 0", rows[0].DaysToExpiry)
	}
}

func TestProductExpiryUsesNinetyDayDefaultAndChecksProduct(t *testing.T) {
	ctx, store, db, pharmacyId := setupLedgerTest(t)
	para := createTestProduct(t, db, pharmacyId, "PARA-500", 100)
	amox := createTestProduct(t, db, pharmacyId, "AMOX-250", 100)

	now := time.Now()
	seedBatch(t, db, pharmacyId, para.ID, "NEAR", now.AddDate(0, 0, 60), 10)
	seedBatch(t, db, pharmacyId, para.ID, "FAR", now.AddDate(0, 0, 120), 10)
	seedBatch(t, db, pharmacyId, amox.ID, "OTHER", now.AddDate(0, 0, 30), 10)

	registry := ledger.NewBatchRegistry(store)
	rows, err := registry.ProductExpiry(ctx, pharmacyId, para.ID, 0)
	if err != nil {
		t.Fatalf("ProductExpiry: %v", err)
	}
	if len(rows) != 1 || rows[0].Batch.BatchNumber != "NEAR" {
		t.Fatalf("rows = %+v, want only NEAR within 90 days", rows)
	}

	if _, err := registry.ProductExpiry(ctx, pharmacyId, 99999, 0); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want not-found for unknown product", err)
	}
}

func TestDaysToExpiryRoundsPartialDaysUp(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"later today", now.Add(6 * time.Hour), 1},
		{"exactly one day", now.Add(24 * time.Hour), 1},
		{"just over one day", now.Add(25 * time.Hour), 2},
		{"this instant", now, 0},
		{"six hours ago", now.Add(-6 * time.Hour), 0},
		{"two days ago", now.Add(-48 * time.Hour), -2},
	}
	for _, tc := range cases {
		if got := ledger.DaysToExpiry(tc.expiry, now); got != tc.want {
			t.Errorf("%s: days = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestClassifyExpiryBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want models.ExpiryStatus
	}{
		{-1, models.ExpiryStatusExpired},
		{0, models.ExpiryStatusExpired},
		{1, models.ExpiryStatusExpiringSoon},
		{30, models.ExpiryStatusExpiringSoon},
		{31, models.ExpiryStatusNormal},
	}
	for _, tc := range cases {
		if got := ledger.ClassifyExpiry(tc.days); got != tc.want {
			t.Errorf("ClassifyExpiry(%d) = %s, want %s", tc.days, got, tc.want)
		}
	}
}
