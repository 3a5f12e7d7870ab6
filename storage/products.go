package storage

import (
	"context"
	"errors"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return utils.WrapStorage("create product", r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	// Catalog edits only. current_stock is owned by the ledgers and must not
	// ride along on a CRUD update.
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("pharmacy_id = ? AND id = ?", p.PharmacyId, p.ID).
		Updates(map[string]interface{}{
			"sku":           p.Sku,
			"name":          p.Name,
			"category":      p.Category,
			"cost_price":    p.CostPrice,
			"retail_price":  p.RetailPrice,
			"reorder_level": p.ReorderLevel,
		}).Error
	return utils.WrapStorage("update product", err)
}

func (r *productRepo) Delete(ctx context.Context, pharmacyId string, id int) error {
	res := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).Delete(&models.Product{}, id)
	if res.Error != nil {
		return utils.WrapStorage("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("product", id)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, pharmacyId string, id int) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("product", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("get product", err)
	}
	return &p, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, pharmacyId string, id int) (*models.Product, error) {
	var p models.Product
	err := forUpdate(r.db.WithContext(ctx)).Where("pharmacy_id = ?", pharmacyId).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("product", id)
	}
	if err != nil {
		return nil, utils.WrapStorage("lock product", err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, pharmacyId string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).
		Order("id asc").Find(&products).Error
	return products, utils.WrapStorage("list products", err)
}

func (r *productRepo) ListLowStock(ctx context.Context, pharmacyId string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyId).
		Where("current_stock <= reorder_level").
		Order("current_stock asc").Find(&products).Error
	return products, utils.WrapStorage("list low-stock products", err)
}

func (r *productRepo) CountBySku(ctx context.Context, pharmacyId string, sku string, exceptId int) (int64, error) {
	var count int64
	dbCtx := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("pharmacy_id = ? AND sku = ?", pharmacyId, sku)
	if exceptId > 0 {
		dbCtx = dbCtx.Where("id <> ?", exceptId)
	}
	err := dbCtx.Count(&count).Error
	return count, utils.WrapStorage("count products by sku", err)
}

func (r *productRepo) IncrementStock(ctx context.Context, id int, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", qty))
	if res.Error != nil {
		return utils.WrapStorage("increment stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("product", id)
	}
	return nil
}

func (r *productRepo) DecrementStock(ctx context.Context, id int, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return utils.WrapStorage("decrement stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("product", id)
	}
	return nil
}
