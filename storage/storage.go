// Package storage is the persistence port of the ledger. Services receive a
// Store by injection; every multi-row ledger mutation runs inside ExecTx so
// the whole operation commits or rolls back as one unit.
package storage

import (
	"context"

	"github.com/medilinkhq/pharmacy_backend/models"
)

// Repos bundles the repositories sharing one database handle. Inside ExecTx
// the handle is the open transaction, so all repository calls in the callback
// are atomic together.
type Repos interface {
	Products() ProductRepository
	Batches() BatchRepository
	Purchases() PurchaseRepository
	Sales() SaleRepository
	Transactions() TransactionRepository
}

type Store interface {
	Repos

	// ExecTx runs fn inside a database transaction. fn returning an error
	// rolls everything back; otherwise the transaction commits.
	ExecTx(ctx context.Context, fn func(Repos) error) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	// Update writes catalog fields only; current_stock is never touched here.
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, pharmacyId string, id int) error
	GetByID(ctx context.Context, pharmacyId string, id int) (*models.Product, error)
	// GetForUpdate loads the row with a row-level lock where the dialect
	// supports it, so check-then-decrement stays serialized.
	GetForUpdate(ctx context.Context, pharmacyId string, id int) (*models.Product, error)
	List(ctx context.Context, pharmacyId string) ([]models.Product, error)
	ListLowStock(ctx context.Context, pharmacyId string) ([]models.Product, error)
	CountBySku(ctx context.Context, pharmacyId string, sku string, exceptId int) (int64, error)
	IncrementStock(ctx context.Context, id int, qty int) error
	DecrementStock(ctx context.Context, id int, qty int) error
}

type BatchRepository interface {
	Create(ctx context.Context, b *models.BatchItem) error
	GetByID(ctx context.Context, pharmacyId string, id int) (*models.BatchItem, error)
	GetForUpdate(ctx context.Context, pharmacyId string, id int) (*models.BatchItem, error)
	IncrementQuantity(ctx context.Context, id int, qty int) error
	DecrementQuantity(ctx context.Context, id int, qty int) error
	DeleteByPurchaseItemIds(ctx context.Context, purchaseItemIds []int) error
	// ListActive returns batches with remaining quantity, ascending expiry
	// (FEFO order).
	ListActive(ctx context.Context, pharmacyId string) ([]models.BatchItem, error)
	ListActiveByProduct(ctx context.Context, pharmacyId string, productId int) ([]models.BatchItem, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, p *models.Purchase) error
	CreateItem(ctx context.Context, item *models.PurchaseItem) error
	GetByID(ctx context.Context, pharmacyId string, id int) (*models.Purchase, error)
	UpdateHeader(ctx context.Context, p *models.Purchase) error
	DeleteItems(ctx context.Context, purchaseId int) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, pharmacyId string, filter models.PurchaseReportFilter) ([]models.Purchase, error)
}

type SaleRepository interface {
	Create(ctx context.Context, s *models.Sale) error
	CreateItem(ctx context.Context, item *models.SaleItem) error
	GetByID(ctx context.Context, pharmacyId string, id int) (*models.Sale, error)
	UpdateHeader(ctx context.Context, s *models.Sale) error
	DeleteItems(ctx context.Context, saleId int) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, pharmacyId string, filter models.SalesReportFilter) ([]models.Sale, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) error
	Update(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, pharmacyId string, id int) (*models.Transaction, error)
	// GetByPurchaseId / GetBySaleId return (nil, nil) when no linked row
	// exists; absence is a normal state for pending purchases.
	GetByPurchaseId(ctx context.Context, purchaseId int) (*models.Transaction, error)
	GetBySaleId(ctx context.Context, saleId int) (*models.Transaction, error)
	Delete(ctx context.Context, id int) error
	DeleteByPurchaseId(ctx context.Context, purchaseId int) error
	DeleteBySaleId(ctx context.Context, saleId int) error
	List(ctx context.Context, pharmacyId string, filter models.TransactionFilter) ([]models.Transaction, error)
}
