package storage

import (
	"context"
	"errors"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

type purchaseRepo struct {
	db *gorm.DB
}

func (r *purchaseRepo) Create(ctx context.Context, p *models.Purchase) error {
	return utils.WrapStorage("create purchase", r.db.WithContext(ctx).Omit("Items").Create(p).Error)
}

func (r *purchaseRepo) CreateItem(ctx context.Context, item *models.PurchaseItem) error {
	return utils.WrapStorage("create purchase item", r.db.WithContext(ctx).Create(item).Error)
}

func (r *purchaseRepo) GetByID(ctx context.Context, pharmacyId string, id int) (*models.Purchase, error) {
	var p models.Purchase
	err := r.db.WithContext(ctx).Preload("Items").
		Where("pharmacy_id = ?", pharmacyId).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("purchase", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("get purchase", err)
	}
	return &p, nil
}

func (r *purchaseRepo) UpdateHeader(ctx context.Context, p *models.Purchase) error {
	err := r.db.WithContext(ctx).Model(&models.Purchase{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"supplier_id":    p.SupplierId,
			"invoice_number": p.InvoiceNumber,
			"purchase_date":  p.PurchaseDate,
			"total_amount":   p.TotalAmount,
			"payment_status": p.PaymentStatus,
			"notes":          p.Notes,
		}).Error
	return utils.WrapStorage("update purchase header", err)
}

func (r *purchaseRepo) DeleteItems(ctx context.Context, purchaseId int) error {
	err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).
		Delete(&models.PurchaseItem{}).Error
	return utils.WrapStorage("delete purchase items", err)
}

func (r *purchaseRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Delete(&models.Purchase{}, id).Error
	return utils.WrapStorage("delete purchase", err)
}

func (r *purchaseRepo) List(ctx context.Context, pharmacyId string, filter models.PurchaseReportFilter) ([]models.Purchase, error) {
	dbCtx := r.db.WithContext(ctx).Preload("Items").
		Where("pharmacy_id = ?", pharmacyId)
	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("purchase_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("purchase_date <= ?", *filter.EndDate)
	}
	if filter.SupplierId != nil {
		dbCtx = dbCtx.Where("supplier_id = ?", *filter.SupplierId)
	}
	// ProductId is applied by the report layer after fetch, scanning loaded
	// items.

	var purchases []models.Purchase
	err := dbCtx.Order("created_at asc, id asc").Find(&purchases).Error
	return purchases, utils.WrapStorage("list purchases", err)
}
