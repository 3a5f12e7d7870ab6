package ledger

import (
	"context"
	"fmt"
	"os"

	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
)

type SaleLedger struct {
	store storage.Store
}

func NewSaleLedger(store storage.Store) *SaleLedger {
	return &SaleLedger{store: store}
}

// Create records an outgoing stock event. Each line is validated against the
// product's on-hand stock (and the named batch's remaining quantity, when a
// batch is given) inside the same transaction that performs the decrement, so
// two concurrent sales cannot both pass the check against the same remainder.
// An INCOME transaction is written for every sale regardless of payment
// status.
func (l *SaleLedger) Create(ctx context.Context, input *models.NewSale) (*models.Sale, error) {
	pharmacyId, ok := utils.GetPharmacyIdFromContext(ctx)
	if !ok || pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := validateSaleItems(input.Items); err != nil {
		return nil, err
	}

	totalAmount := input.TotalAmount
	if totalAmount.IsZero() {
		totalAmount = sumSaleItems(input.Items).Sub(input.Discount).Add(input.Tax)
	}
	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPaid
	}

	release, err := utils.PharmacyLock(ctx, pharmacyId, stockLockType, "ledger/sale.go", "Create")
	if err != nil {
		return nil, err
	}
	defer release()

	sale := &models.Sale{
		PharmacyId:    pharmacyId,
		InvoiceNumber: input.InvoiceNumber,
		SaleDate:      input.SaleDate,
		CustomerName:  input.CustomerName,
		CustomerPhone: normalizeCustomerPhone(input.CustomerPhone),
		CustomerEmail: input.CustomerEmail,
		TotalAmount:   totalAmount,
		Discount:      input.Discount,
		Tax:           input.Tax,
		PaymentStatus: paymentStatus,
	}

	err = l.store.ExecTx(ctx, func(repos storage.Repos) error {
		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}
		if err := applySaleItems(ctx, repos, pharmacyId, sale.ID, input.Items); err != nil {
			return err
		}
		return repos.Transactions().Create(ctx, &models.Transaction{
			PharmacyId:  pharmacyId,
			Type:        models.TransactionTypeIncome,
			Amount:      sale.TotalAmount,
			Date:        sale.SaleDate,
			Description: fmt.Sprintf("Sale %s", sale.InvoiceNumber),
			SaleId:      &sale.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateReportCache(pharmacyId)
	return l.store.Sales().GetByID(ctx, pharmacyId, sale.ID)
}

// Update replaces the header unconditionally. A non-nil item set reverts the
// old items' stock and batch effects, swaps the items, and re-applies the new
// set under the same validation as create. The linked INCOME transaction is
// refreshed with the new amount/date.
func (l *SaleLedger) Update(ctx context.Context, id int, pharmacyId string, input *models.UpdateSale) (*models.Sale, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if config.StrictLedgerImmutability() {
		return nil, utils.ValidationError("sales are immutable; delete and recreate instead")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.Items != nil {
		if err := validateSaleItems(input.Items); err != nil {
			return nil, err
		}
	}

	release, err := utils.PharmacyLock(ctx, pharmacyId, stockLockType, "ledger/sale.go", "Update")
	if err != nil {
		return nil, err
	}
	defer release()

	err = l.store.ExecTx(ctx, func(repos storage.Repos) error {
		sale, err := repos.Sales().GetByID(ctx, pharmacyId, id)
		if err != nil {
			return err
		}

		totalAmount := input.TotalAmount
		if totalAmount.IsZero() {
			if input.Items != nil {
				totalAmount = sumSaleItems(input.Items).Sub(input.Discount).Add(input.Tax)
			} else {
				totalAmount = sale.TotalAmount
			}
		}

		sale.InvoiceNumber = input.InvoiceNumber
		sale.SaleDate = input.SaleDate
		sale.CustomerName = input.CustomerName
		sale.CustomerPhone = normalizeCustomerPhone(input.CustomerPhone)
		sale.CustomerEmail = input.CustomerEmail
		sale.TotalAmount = totalAmount
		sale.Discount = input.Discount
		sale.Tax = input.Tax
		if input.PaymentStatus != "" {
			sale.PaymentStatus = input.PaymentStatus
		}
		if err := repos.Sales().UpdateHeader(ctx, sale); err != nil {
			return err
		}

		if input.Items != nil {
			if err := revertSaleItems(ctx, repos, sale.Items); err != nil {
				return err
			}
			if err := repos.Sales().DeleteItems(ctx, sale.ID); err != nil {
				return err
			}
			if err := applySaleItems(ctx, repos, pharmacyId, sale.ID, input.Items); err != nil {
				return err
			}
		}

		existing, err := repos.Transactions().GetBySaleId(ctx, sale.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Amount = sale.TotalAmount
			existing.Date = sale.SaleDate
			existing.Description = fmt.Sprintf("Sale %s", sale.InvoiceNumber)
			return repos.Transactions().Update(ctx, existing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateReportCache(pharmacyId)
	return l.store.Sales().GetByID(ctx, pharmacyId, id)
}

// Delete restores the stock and batch quantities the sale consumed, removes
// the linked transaction and the items, then the sale itself.
func (l *SaleLedger) Delete(ctx context.Context, id int, pharmacyId string) error {
	if pharmacyId == "" {
		return utils.ValidationError("pharmacy id is required")
	}

	release, err := utils.PharmacyLock(ctx, pharmacyId, stockLockType, "ledger/sale.go", "Delete")
	if err != nil {
		return err
	}
	defer release()

	err = l.store.ExecTx(ctx, func(repos storage.Repos) error {
		sale, err := repos.Sales().GetByID(ctx, pharmacyId, id)
		if err != nil {
			return err
		}
		if err := revertSaleItems(ctx, repos, sale.Items); err != nil {
			return err
		}
		if err := repos.Transactions().DeleteBySaleId(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.Sales().DeleteItems(ctx, sale.ID); err != nil {
			return err
		}
		return repos.Sales().Delete(ctx, sale.ID)
	})
	if err != nil {
		return err
	}

	invalidateReportCache(pharmacyId)
	return nil
}

// applySaleItems inserts the lines and performs the validated decrements:
// the named batch first, then the product counter. Any failure aborts the
// surrounding transaction so no partial decrement survives.
func applySaleItems(ctx context.Context, repos storage.Repos, pharmacyId string, saleId int, items []models.NewSaleItem) error {
	for _, in := range items {
		item := &models.SaleItem{
			SaleId:      saleId,
			ProductId:   in.ProductId,
			BatchItemId: in.BatchItemId,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  itemTotal(in.Quantity, in.UnitPrice, in.TotalPrice),
		}
		if err := repos.Sales().CreateItem(ctx, item); err != nil {
			return err
		}

		if in.BatchItemId != nil {
			batch, err := repos.Batches().GetForUpdate(ctx, pharmacyId, *in.BatchItemId)
			if err != nil {
				return err
			}
			if batch.CurrentQuantity < in.Quantity {
				return utils.InsufficientStockError("batch", batch.ID, batch.CurrentQuantity, in.Quantity)
			}
			if err := repos.Batches().DecrementQuantity(ctx, batch.ID, in.Quantity); err != nil {
				return err
			}
		}

		product, err := repos.Products().GetForUpdate(ctx, pharmacyId, in.ProductId)
		if err != nil {
			return err
		}
		if product.CurrentStock < in.Quantity {
			return utils.InsufficientStockError("product", product.ID, product.CurrentStock, in.Quantity)
		}
		if err := repos.Products().DecrementStock(ctx, product.ID, in.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// revertSaleItems gives back what the items took: batch quantity first, then
// product stock.
func revertSaleItems(ctx context.Context, repos storage.Repos, items []models.SaleItem) error {
	for _, item := range items {
		if item.BatchItemId != nil {
			if err := repos.Batches().IncrementQuantity(ctx, *item.BatchItemId, item.Quantity); err != nil {
				return err
			}
		}
		if err := repos.Products().IncrementStock(ctx, item.ProductId, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func validateSaleItems(items []models.NewSaleItem) error {
	for i, item := range items {
		if item.UnitPrice.IsNegative() {
			return utils.ValidationError(fmt.Sprintf("item %d: unit price cannot be negative", i))
		}
	}
	return nil
}

func sumSaleItems(items []models.NewSaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(itemTotal(item.Quantity, item.UnitPrice, item.TotalPrice))
	}
	return total
}

// normalizeCustomerPhone formats to E.164 when the number parses; raw input
// is kept otherwise so a typo never blocks a sale.
func normalizeCustomerPhone(raw string) string {
	if raw == "" {
		return ""
	}
	if normalized, err := utils.NormalizePhone(raw, os.Getenv("PHONE_REGION")); err == nil {
		return normalized
	}
	return raw
}
