package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseReport struct {
	Purchases []Purchase      `json:"purchases"`
	Summary   PurchaseSummary `json:"summary"`
}

type PurchaseSummary struct {
	TotalPurchases       int             `json:"total_purchases"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	AveragePurchaseValue decimal.Decimal `json:"average_purchase_value"`
	TopSuppliers         []SupplierSpend `json:"top_suppliers"`
}

type SupplierSpend struct {
	SupplierId  int             `json:"supplier_id"`
	TotalSpend  decimal.Decimal `json:"total_spend"`
	OrderCount  int             `json:"order_count"`
	FirstSeenAt time.Time       `json:"-"`
}

type SalesReport struct {
	Sales   []Sale       `json:"sales"`
	Summary SalesSummary `json:"summary"`
}

type SalesSummary struct {
	TotalSales        int               `json:"total_sales"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	AverageOrderValue decimal.Decimal   `json:"average_order_value"`
	TopProducts       []ProductQuantity `json:"top_products"`
}

type ProductQuantity struct {
	ProductId    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
}

// BatchExpiryRow is one line of the FEFO expiry report: active batches ranked
// by ascending expiry date.
type BatchExpiryRow struct {
	Batch        BatchItem    `json:"batch"`
	DaysToExpiry int          `json:"days_to_expiry"`
	Status       ExpiryStatus `json:"status"`
}
