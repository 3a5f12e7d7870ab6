package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
)

const (
	topEntriesLimit = 5
	reportCacheTTL  = time.Minute
)

// Report aggregates the pharmacy's purchases: count, spend, average order
// value and the top suppliers by spend (ties broken by first encounter).
// Reads are not transactional with writes; under concurrent ledger activity
// the aggregates are an eventually-consistent snapshot, and recent snapshots
// are served from the redis cache when one is wired.
func (l *PurchaseLedger) Report(ctx context.Context, pharmacyId string, filter models.PurchaseReportFilter) (*models.PurchaseReport, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}

	cacheKey := reportCacheKey("purchases", pharmacyId, purchaseFilterKey(filter))
	if !config.ReportCacheDisabled() {
		var cached models.PurchaseReport
		if ok, err := config.GetRedisObject(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	purchases, err := l.store.Purchases().List(ctx, pharmacyId, filter)
	if err != nil {
		return nil, err
	}
	if filter.ProductId != nil {
		purchases = filterPurchasesByProduct(purchases, *filter.ProductId)
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}

	totalAmount := decimal.Zero
	spendBySupplier := make(map[int]*models.SupplierSpend)
	supplierOrder := make([]int, 0)
	for _, p := range purchases {
		totalAmount = totalAmount.Add(p.TotalAmount)

		spend, ok := spendBySupplier[p.SupplierId]
		if !ok {
			spend = &models.SupplierSpend{SupplierId: p.SupplierId}
			spendBySupplier[p.SupplierId] = spend
			supplierOrder = append(supplierOrder, p.SupplierId)
		}
		spend.TotalSpend = spend.TotalSpend.Add(p.TotalAmount)
		spend.OrderCount++
	}

	average := decimal.Zero
	if len(purchases) > 0 {
		average = totalAmount.Div(decimal.NewFromInt(int64(len(purchases))))
	}

	// supplierOrder keeps first-encounter order; the stable sort preserves it
	// among equal spends.
	topSuppliers := make([]models.SupplierSpend, 0, len(supplierOrder))
	for _, id := range supplierOrder {
		topSuppliers = append(topSuppliers, *spendBySupplier[id])
	}
	sort.SliceStable(topSuppliers, func(i, j int) bool {
		return topSuppliers[i].TotalSpend.GreaterThan(topSuppliers[j].TotalSpend)
	})
	if len(topSuppliers) > topEntriesLimit {
		topSuppliers = topSuppliers[:topEntriesLimit]
	}

	report := &models.PurchaseReport{
		Purchases: purchases,
		Summary: models.PurchaseSummary{
			TotalPurchases:       len(purchases),
			TotalAmount:          totalAmount,
			AveragePurchaseValue: average,
			TopSuppliers:         topSuppliers,
		},
	}
	if !config.ReportCacheDisabled() {
		_ = config.SetRedisObject(cacheKey, report, reportCacheTTL)
	}
	return report, nil
}

// Report aggregates the pharmacy's sales: count, revenue, average order value
// and the top products by quantity sold (ties broken by first encounter).
// Product and category filters scan the loaded sale items after fetch rather
// than being pushed into the query, so the returned sales keep their full
// item sets.
func (l *SaleLedger) Report(ctx context.Context, pharmacyId string, filter models.SalesReportFilter) (*models.SalesReport, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}

	cacheKey := reportCacheKey("sales", pharmacyId, salesFilterKey(filter))
	if !config.ReportCacheDisabled() {
		var cached models.SalesReport
		if ok, err := config.GetRedisObject(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	sales, err := l.store.Sales().List(ctx, pharmacyId, filter)
	if err != nil {
		return nil, err
	}
	if filter.ProductId != nil || filter.Category != "" {
		sales = filterSalesByItems(sales, filter)
	}
	if sales == nil {
		sales = []models.Sale{}
	}

	totalRevenue := decimal.Zero
	qtyByProduct := make(map[int]*models.ProductQuantity)
	productOrder := make([]int, 0)
	for _, s := range sales {
		totalRevenue = totalRevenue.Add(s.TotalAmount)

		for _, item := range s.Items {
			pq, ok := qtyByProduct[item.ProductId]
			if !ok {
				pq = &models.ProductQuantity{ProductId: item.ProductId, ProductName: item.Product.Name}
				qtyByProduct[item.ProductId] = pq
				productOrder = append(productOrder, item.ProductId)
			}
			pq.QuantitySold += item.Quantity
		}
	}

	average := decimal.Zero
	if len(sales) > 0 {
		average = totalRevenue.Div(decimal.NewFromInt(int64(len(sales))))
	}

	topProducts := make([]models.ProductQuantity, 0, len(productOrder))
	for _, id := range productOrder {
		topProducts = append(topProducts, *qtyByProduct[id])
	}
	sort.SliceStable(topProducts, func(i, j int) bool {
		return topProducts[i].QuantitySold > topProducts[j].QuantitySold
	})
	if len(topProducts) > topEntriesLimit {
		topProducts = topProducts[:topEntriesLimit]
	}

	report := &models.SalesReport{
		Sales: sales,
		Summary: models.SalesSummary{
			TotalSales:        len(sales),
			TotalRevenue:      totalRevenue,
			AverageOrderValue: average,
			TopProducts:       topProducts,
		},
	}
	if !config.ReportCacheDisabled() {
		_ = config.SetRedisObject(cacheKey, report, reportCacheTTL)
	}
	return report, nil
}

func filterPurchasesByProduct(purchases []models.Purchase, productId int) []models.Purchase {
	kept := make([]models.Purchase, 0, len(purchases))
	for _, p := range purchases {
		for _, item := range p.Items {
			if item.ProductId == productId {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// filterSalesByItems keeps sales containing at least one item matching the
// product/category filter.
func filterSalesByItems(sales []models.Sale, filter models.SalesReportFilter) []models.Sale {
	kept := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		for _, item := range s.Items {
			if filter.ProductId != nil && item.ProductId != *filter.ProductId {
				continue
			}
			if filter.Category != "" && item.Product.Category != filter.Category {
				continue
			}
			kept = append(kept, s)
			break
		}
	}
	return kept
}

func reportCacheKey(kind string, pharmacyId string, filterKey string) string {
	return fmt.Sprintf("report:%s:%s:%s", kind, pharmacyId, filterKey)
}

// invalidateReportCache drops every cached report for the pharmacy. Called
// after each ledger write; a no-op without redis.
func invalidateReportCache(pharmacyId string) {
	if err := config.RemoveRedisKeysByPattern(fmt.Sprintf("report:*:%s:*", pharmacyId)); err != nil {
		config.LogError(config.GetLogger(), "ledger/reports.go", "invalidateReportCache", "dropping cached reports", pharmacyId, err)
	}
}

func purchaseFilterKey(f models.PurchaseReportFilter) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		fmtTimePtr(f.StartDate), fmtTimePtr(f.EndDate), fmtIntPtr(f.SupplierId), fmtIntPtr(f.ProductId))
}

func salesFilterKey(f models.SalesReportFilter) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		fmtTimePtr(f.StartDate), fmtTimePtr(f.EndDate), fmtIntPtr(f.ProductId), f.Category)
}

func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}
