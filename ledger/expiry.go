package ledger

import (
	"context"
	"time"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
)

const (
	// DefaultReportThresholdDays bounds the pharmacy-wide expiry report.
	DefaultReportThresholdDays = 180
	// DefaultProductThresholdDays bounds the per-product expiry lookup.
	DefaultProductThresholdDays = 90
	// ExpiringSoonDays is the cutoff below which a live batch is flagged.
	ExpiringSoonDays = 30
)

// BatchRegistry reads batch-level stock for expiry tracking. Batch rows are
// created and consumed by the purchase and sale ledgers; the registry only
// reports on them.
type BatchRegistry struct {
	store storage.Store
}

func NewBatchRegistry(store storage.Store) *BatchRegistry {
	return &BatchRegistry{store: store}
}

// ExpiryReport lists active batches expiring within thresholdDays (default
// 180), soonest first. Batches already past their expiry date are included
// with status EXPIRED and a non-positive day count.
func (r *BatchRegistry) ExpiryReport(ctx context.Context, pharmacyId string, thresholdDays int) ([]models.BatchExpiryRow, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if thresholdDays <= 0 {
		thresholdDays = DefaultReportThresholdDays
	}

	batches, err := r.store.Batches().ListActive(ctx, pharmacyId)
	if err != nil {
		return nil, err
	}
	return classifyBatches(batches, thresholdDays, time.Now()), nil
}

// ProductExpiry lists the product's active batches expiring within
// thresholdDays (default 90), soonest first.
func (r *BatchRegistry) ProductExpiry(ctx context.Context, pharmacyId string, productId int, thresholdDays int) ([]models.BatchExpiryRow, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if thresholdDays <= 0 {
		thresholdDays = DefaultProductThresholdDays
	}

	if _, err := r.store.Products().GetByID(ctx, pharmacyId, productId); err != nil {
		return nil, err
	}
	batches, err := r.store.Batches().ListActiveByProduct(ctx, pharmacyId, productId)
	if err != nil {
		return nil, err
	}
	return classifyBatches(batches, thresholdDays, time.Now()), nil
}

// classifyBatches keeps batches within the threshold and attaches day counts
// and statuses. The input is already in ascending expiry order, which the
// rows preserve.
func classifyBatches(batches []models.BatchItem, thresholdDays int, now time.Time) []models.BatchExpiryRow {
	rows := make([]models.BatchExpiryRow, 0, len(batches))
	for _, b := range batches {
		days := DaysToExpiry(b.ExpiryDate, now)
		if days > thresholdDays {
			continue
		}
		rows = append(rows, models.BatchExpiryRow{
			Batch:        b,
			DaysToExpiry: days,
			Status:       ClassifyExpiry(days),
		})
	}
	return rows
}

// DaysToExpiry counts whole days until expiry, rounding partial days up so a
// batch expiring later today reports 1 and only a past date reports <= 0.
func DaysToExpiry(expiry time.Time, now time.Time) int {
	hours := expiry.Sub(now).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

func ClassifyExpiry(daysToExpiry int) models.ExpiryStatus {
	switch {
	case daysToExpiry <= 0:
		return models.ExpiryStatusExpired
	case daysToExpiry <= ExpiringSoonDays:
		return models.ExpiryStatusExpiringSoon
	default:
		return models.ExpiryStatusNormal
	}
}
