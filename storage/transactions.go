package storage

import (
	"context"
	"errors"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

type transactionRepo struct {
	db *gorm.DB
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	return utils.WrapStorage("create transaction", r.db.WithContext(ctx).Create(t).Error)
}

func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"amount":      t.Amount,
			"date":        t.Date,
			"description": t.Description,
		}).Error
	return utils.WrapStorage("update transaction", err)
}

func (r *transactionRepo) GetByID(ctx context.Context, pharmacyId string, id int) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("transaction", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("get transaction", err)
	}
	return &t, nil
}

func (r *transactionRepo) GetByPurchaseId(ctx context.Context, purchaseId int) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapStorage("get transaction by purchase", err)
	}
	return &t, nil
}

func (r *transactionRepo) GetBySaleId(ctx context.Context, saleId int) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleId).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapStorage("get transaction by sale", err)
	}
	return &t, nil
}

func (r *transactionRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
	return utils.WrapStorage("delete transaction", err)
}

func (r *transactionRepo) DeleteByPurchaseId(ctx context.Context, purchaseId int) error {
	err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).
		Delete(&models.Transaction{}).Error
	return utils.WrapStorage("delete transaction by purchase", err)
}

func (r *transactionRepo) DeleteBySaleId(ctx context.Context, saleId int) error {
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleId).
		Delete(&models.Transaction{}).Error
	return utils.WrapStorage("delete transaction by sale", err)
}

func (r *transactionRepo) List(ctx context.Context, pharmacyId string, filter models.TransactionFilter) ([]models.Transaction, error) {
	dbCtx := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId)
	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("date <= ?", *filter.EndDate)
	}
	if filter.Type != nil {
		dbCtx = dbCtx.Where("type = ?", *filter.Type)
	}

	var transactions []models.Transaction
	err := dbCtx.Order("date asc, id asc").Find(&transactions).Error
	return transactions, utils.WrapStorage("list transactions", err)
}
