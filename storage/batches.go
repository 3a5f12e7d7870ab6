package storage

import (
	"context"
	"errors"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

type batchRepo struct {
	db *gorm.DB
}

func (r *batchRepo) Create(ctx context.Context, b *models.BatchItem) error {
	return utils.WrapStorage("create batch", r.db.WithContext(ctx).Create(b).Error)
}

func (r *batchRepo) GetByID(ctx context.Context, pharmacyId string, id int) (*models.BatchItem, error) {
	var b models.BatchItem
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("batch", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("get batch", err)
	}
	return &b, nil
}

func (r *batchRepo) GetForUpdate(ctx context.Context, pharmacyId string, id int) (*models.BatchItem, error) {
	var b models.BatchItem
	err := forUpdate(r.db.WithContext(ctx)).Where("pharmacy_id = ?", pharmacyId).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("batch", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("lock batch", err)
	}
	return &b, nil
}

func (r *batchRepo) IncrementQuantity(ctx context.Context, id int, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.BatchItem{}).Where("id = ?", id).
		UpdateColumn("current_quantity", gorm.Expr("current_quantity + ?", qty))
	if res.Error != nil {
		return utils.WrapStorage("increment batch quantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("batch", id)
	}
	return nil
}

func (r *batchRepo) DecrementQuantity(ctx context.Context, id int, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.BatchItem{}).Where("id = ?", id).
		UpdateColumn("current_quantity", gorm.Expr("current_quantity - ?", qty))
	if res.Error != nil {
		return utils.WrapStorage("decrement batch quantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("batch", id)
	}
	return nil
}

func (r *batchRepo) DeleteByPurchaseItemIds(ctx context.Context, purchaseItemIds []int) error {
	if len(purchaseItemIds) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Where("purchase_item_id IN ?", purchaseItemIds).
		Delete(&models.BatchItem{}).Error
	return utils.WrapStorage("delete batches by purchase items", err)
}

func (r *batchRepo) ListActive(ctx context.Context, pharmacyId string) ([]models.BatchItem, error) {
	var batches []models.BatchItem
	err := r.db.WithContext(ctx).Where("pharmacy_id = ? AND current_quantity > 0", pharmacyId).
		Order("expiry_date asc").Find(&batches).Error
	return batches, utils.WrapStorage("list active batches", err)
}

func (r *batchRepo) ListActiveByProduct(ctx context.Context, pharmacyId string, productId int) ([]models.BatchItem, error) {
	var batches []models.BatchItem
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND product_id = ? AND current_quantity > 0", pharmacyId, productId).
		Order("expiry_date asc").Find(&batches).Error
	return batches, utils.WrapStorage("list active batches by product", err)
}
