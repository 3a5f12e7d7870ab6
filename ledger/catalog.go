package ledger

import (
	"context"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
)

// Catalog manages the product master data. It never writes CurrentStock;
// stock moves only through the purchase and sale ledgers.
type Catalog struct {
	store storage.Store
}

func NewCatalog(store storage.Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) Create(ctx context.Context, input *models.NewProduct) (*models.Product, error) {
	pharmacyId, ok := utils.GetPharmacyIdFromContext(ctx)
	if !ok || pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	count, err := c.store.Products().CountBySku(ctx, pharmacyId, input.Sku, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.ConflictError("product", "sku", input.Sku)
	}

	product := &models.Product{
		PharmacyId:   pharmacyId,
		Sku:          input.Sku,
		Name:         input.Name,
		Category:     input.Category,
		CostPrice:    input.CostPrice,
		RetailPrice:  input.RetailPrice,
		ReorderLevel: input.ReorderLevel,
	}
	if err := c.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update writes catalog fields only. The stock counter is deliberately not
// part of UpdateProduct and the repository skips the column.
func (c *Catalog) Update(ctx context.Context, id int, pharmacyId string, input *models.UpdateProduct) (*models.Product, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	product, err := c.store.Products().GetByID(ctx, pharmacyId, id)
	if err != nil {
		return nil, err
	}

	if input.Sku != product.Sku {
		count, err := c.store.Products().CountBySku(ctx, pharmacyId, input.Sku, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, utils.ConflictError("product", "sku", input.Sku)
		}
	}

	product.Sku = input.Sku
	product.Name = input.Name
	product.Category = input.Category
	product.CostPrice = input.CostPrice
	product.RetailPrice = input.RetailPrice
	product.ReorderLevel = input.ReorderLevel
	if err := c.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}
	return c.store.Products().GetByID(ctx, pharmacyId, id)
}

func (c *Catalog) Delete(ctx context.Context, id int, pharmacyId string) error {
	if pharmacyId == "" {
		return utils.ValidationError("pharmacy id is required")
	}
	if _, err := c.store.Products().GetByID(ctx, pharmacyId, id); err != nil {
		return err
	}
	return c.store.Products().Delete(ctx, pharmacyId, id)
}

func (c *Catalog) Get(ctx context.Context, pharmacyId string, id int) (*models.Product, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	return c.store.Products().GetByID(ctx, pharmacyId, id)
}

func (c *Catalog) List(ctx context.Context, pharmacyId string) ([]models.Product, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	return c.store.Products().List(ctx, pharmacyId)
}

// ListLowStock returns products at or below their reorder level.
func (c *Catalog) ListLowStock(ctx context.Context, pharmacyId string) ([]models.Product, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	return c.store.Products().ListLowStock(ctx, pharmacyId)
}
