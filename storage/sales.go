package storage

import (
	"context"
	"errors"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

type saleRepo struct {
	db *gorm.DB
}

func (r *saleRepo) Create(ctx context.Context, s *models.Sale) error {
	return utils.WrapStorage("create sale", r.db.WithContext(ctx).Omit("Items").Create(s).Error)
}

func (r *saleRepo) CreateItem(ctx context.Context, item *models.SaleItem) error {
	return utils.WrapStorage("create sale item", r.db.WithContext(ctx).Omit("Product").Create(item).Error)
}

func (r *saleRepo) GetByID(ctx context.Context, pharmacyId string, id int) (*models.Sale, error) {
	var s models.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("pharmacy_id = ?", pharmacyId).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("sale", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("get sale", err)
	}
	return &s, nil
}

func (r *saleRepo) UpdateHeader(ctx context.Context, s *models.Sale) error {
	err := r.db.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"invoice_number": s.InvoiceNumber,
			"sale_date":      s.SaleDate,
			"customer_name":  s.CustomerName,
			"customer_phone": s.CustomerPhone,
			"customer_email": s.CustomerEmail,
			"total_amount":   s.TotalAmount,
			"discount":       s.Discount,
			"tax":            s.Tax,
			"payment_status": s.PaymentStatus,
		}).Error
	return utils.WrapStorage("update sale header", err)
}

func (r *saleRepo) DeleteItems(ctx context.Context, saleId int) error {
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleId).
		Delete(&models.SaleItem{}).Error
	return utils.WrapStorage("delete sale items", err)
}

func (r *saleRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Delete(&models.Sale{}, id).Error
	return utils.WrapStorage("delete sale", err)
}

func (r *saleRepo) List(ctx context.Context, pharmacyId string, filter models.SalesReportFilter) ([]models.Sale, error) {
	dbCtx := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").
		Where("pharmacy_id = ?", pharmacyId)
	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("sale_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("sale_date <= ?", *filter.EndDate)
	}
	// Product/category filters are applied by the report layer after fetch
	// (scanning loaded sale items), not pushed into the query.

	var sales []models.Sale
	err := dbCtx.Order("created_at asc, id asc").Find(&sales).Error
	return sales, utils.WrapStorage("list sales", err)
}
