package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a gorm handle (MySQL in production, sqlite in
// tests and local dev).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Products() ProductRepository         { return &productRepo{db: s.db} }
func (s *GormStore) Batches() BatchRepository            { return &batchRepo{db: s.db} }
func (s *GormStore) Purchases() PurchaseRepository       { return &purchaseRepo{db: s.db} }
func (s *GormStore) Sales() SaleRepository               { return &saleRepo{db: s.db} }
func (s *GormStore) Transactions() TransactionRepository { return &transactionRepo{db: s.db} }

type txRepos struct {
	tx *gorm.DB
}

func (r *txRepos) Products() ProductRepository         { return &productRepo{db: r.tx} }
func (r *txRepos) Batches() BatchRepository            { return &batchRepo{db: r.tx} }
func (r *txRepos) Purchases() PurchaseRepository       { return &purchaseRepo{db: r.tx} }
func (r *txRepos) Sales() SaleRepository               { return &saleRepo{db: r.tx} }
func (r *txRepos) Transactions() TransactionRepository { return &transactionRepo{db: r.tx} }

// ExecTx begins a transaction, hands transaction-bound repositories to fn and
// commits on success. Always rolls back on error or panic so no lock leaks.
func (s *GormStore) ExecTx(ctx context.Context, fn func(Repos) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()

	if err := fn(&txRepos{tx: tx}); err != nil {
		_ = tx.Rollback().Error
		return err
	}
	return tx.Commit().Error
}

var _ Store = (*GormStore)(nil)

// forUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE.
// sqlite serializes writers at the file level, so no clause is needed there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "mysql" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
