// Package ledger holds the inventory ledger: the only writers of
// Product.CurrentStock and BatchItem.CurrentQuantity, and the owners of the
// derived financial transaction log. Every multi-row mutation runs inside one
// storage transaction; a failure anywhere rolls the whole operation back.
package ledger

import (
	"context"
	"fmt"

	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"github.com/shopspring/decimal"
)

const stockLockType = "stockLock"

type PurchaseLedger struct {
	store storage.Store
}

func NewPurchaseLedger(store storage.Store) *PurchaseLedger {
	return &PurchaseLedger{store: store}
}

// Create records an incoming stock event: header, line items, batch rows for
// lines carrying both batch number and expiry date, stock increments, and an
// EXPENSE transaction when the purchase is already (partially) paid.
func (l *PurchaseLedger) Create(ctx context.Context, input *models.NewPurchase) (*models.Purchase, error) {
	pharmacyId, ok := utils.GetPharmacyIdFromContext(ctx)
	if !ok || pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := validatePurchaseItems(input.Items); err != nil {
		return nil, err
	}

	totalAmount := input.TotalAmount
	if totalAmount.IsZero() {
		totalAmount = sumPurchaseItems(input.Items)
	}

	release, err := utils.PharmacyLock(ctx, pharmacyId, stockLockType, "ledger/purchase.go", "Create")
	if err != nil {
		return nil, err
	}
	defer release()

	purchase := &models.Purchase{
		PharmacyId:    pharmacyId,
		SupplierId:    input.SupplierId,
		InvoiceNumber: input.InvoiceNumber,
		PurchaseDate:  input.PurchaseDate,
		TotalAmount:   totalAmount,
		PaymentStatus: input.PaymentStatus,
		Notes:         input.Notes,
	}

	err = l.store.ExecTx(ctx, func(repos storage.Repos) error {
		if err := repos.Purchases().Create(ctx, purchase); err != nil {
			return err
		}
		if err := applyPurchaseItems(ctx, repos, pharmacyId, purchase.ID, input.Items); err != nil {
			return err
		}
		if input.PaymentStatus.CreatesExpense() {
			return repos.Transactions().Create(ctx, &models.Transaction{
				PharmacyId:  pharmacyId,
				Type:        models.TransactionTypeExpense,
				Amount:      purchase.TotalAmount,
				Date:        purchase.PurchaseDate,
				Description: fmt.Sprintf("Purchase %s", purchase.InvoiceNumber),
				PurchaseId:  &purchase.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateReportCache(pharmacyId)
	return l.store.Purchases().GetByID(ctx, pharmacyId, purchase.ID)
}

// Update replaces the header unconditionally. When the input carries an item
// set, the stock and batch effects of every old item are reverted, the old
// items and their batches dropped, and the new items applied as on create.
// The linked transaction is reconciled against the new payment status.
func (l *PurchaseLedger) Update(ctx context.Context, id int, pharmacyId string, input *models.UpdatePurchase) (*models.Purchase, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	if config.StrictLedgerImmutability() {
		return nil, utils.ValidationError("purchases are immutable; delete and recreate instead")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.Items != nil {
		if err := validatePurchaseItems(input.Items); err != nil {
			return nil, err
		}
	}

	release, err := utils.PharmacyLock(ctx, pharmacyId, stockLockType, "ledger/purchase.go", "Update")
	if err != nil {
		return nil, err
	}
	defer release()

	err = l.store.ExecTx(ctx, func(repos storage.Repos) error {
		purchase, err := repos.Purchases().GetByID(ctx, pharmacyId, id)
		if err != nil {
			return err
		}

		totalAmount := input.TotalAmount
		if totalAmount.IsZero() {
			if input.Items != nil {
				totalAmount = sumPurchaseItems(input.Items)
			} else {
				totalAmount = purchase.TotalAmount
			}
		}

		purchase.SupplierId = input.SupplierId
		purchase.InvoiceNumber = input.InvoiceNumber
		purchase.PurchaseDate = input.PurchaseDate
		purchase.TotalAmount = totalAmount
		purchase.PaymentStatus = input.PaymentStatus
		purchase.Notes = input.Notes
		if err := repos.Purchases().UpdateHeader(ctx, purchase); err != nil {
			return err
		}

		if input.Items != nil {
			if err := revertPurchaseItems(ctx, repos, purchase.Items); err != nil {
				return err
			}
			if err := repos.Purchases().DeleteItems(ctx, purchase.ID); err != nil {
				return err
			}
			if err := applyPurchaseItems(ctx, repos, pharmacyId, purchase.ID, input.Items); err != nil {
				return err
			}
		}

		return reconcilePurchaseTransaction(ctx, repos, purchase)
	})
	if err != nil {
		return nil, err
	}

	invalidateReportCache(pharmacyId)
	return l.store.Purchases().GetByID(ctx, pharmacyId, id)
}

// Delete reverts every stock effect of the purchase, removes all child rows
// (batches, items, linked transaction) and then the purchase itself.
func (l *PurchaseLedger) Delete(ctx context.Context, id int, pharmacyId string) error {
	if pharmacyId == "" {
		return utils.ValidationError("pharmacy id is required")
	}

	release, err := utils.PharmacyLock(ctx, pharmacyId, stockLockType, "ledger/purchase.go", "Delete")
	if err != nil {
		return err
	}
	defer release()

	err = l.store.ExecTx(ctx, func(repos storage.Repos) error {
		purchase, err := repos.Purchases().GetByID(ctx, pharmacyId, id)
		if err != nil {
			return err
		}
		if err := revertPurchaseItems(ctx, repos, purchase.Items); err != nil {
			return err
		}
		if err := repos.Transactions().DeleteByPurchaseId(ctx, purchase.ID); err != nil {
			return err
		}
		if err := repos.Purchases().DeleteItems(ctx, purchase.ID); err != nil {
			return err
		}
		return repos.Purchases().Delete(ctx, purchase.ID)
	})
	if err != nil {
		return err
	}

	invalidateReportCache(pharmacyId)
	return nil
}

// applyPurchaseItems runs "step 2" of create for a fresh item list: insert
// the line, register a batch when the line names one, bump product stock.
func applyPurchaseItems(ctx context.Context, repos storage.Repos, pharmacyId string, purchaseId int, items []models.NewPurchaseItem) error {
	for _, in := range items {
		if _, err := repos.Products().GetForUpdate(ctx, pharmacyId, in.ProductId); err != nil {
			return err
		}

		item := &models.PurchaseItem{
			PurchaseId: purchaseId,
			ProductId:  in.ProductId,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
			TotalPrice: itemTotal(in.Quantity, in.UnitPrice, in.TotalPrice),
		}
		if err := repos.Purchases().CreateItem(ctx, item); err != nil {
			return err
		}

		if in.BatchNumber != nil && *in.BatchNumber != "" && in.ExpiryDate != nil {
			batch := &models.BatchItem{
				PharmacyId:      pharmacyId,
				ProductId:       in.ProductId,
				PurchaseItemId:  &item.ID,
				BatchNumber:     *in.BatchNumber,
				ExpiryDate:      *in.ExpiryDate,
				InitialQuantity: in.Quantity,
				CurrentQuantity: in.Quantity,
			}
			if err := repos.Batches().Create(ctx, batch); err != nil {
				return err
			}
		}

		if err := repos.Products().IncrementStock(ctx, in.ProductId, in.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// revertPurchaseItems undoes the stock increments of the given items and
// drops the batches they registered. The items themselves are deleted by the
// caller.
func revertPurchaseItems(ctx context.Context, repos storage.Repos, items []models.PurchaseItem) error {
	itemIds := make([]int, 0, len(items))
	for _, item := range items {
		if err := repos.Products().DecrementStock(ctx, item.ProductId, item.Quantity); err != nil {
			return err
		}
		itemIds = append(itemIds, item.ID)
	}
	return repos.Batches().DeleteByPurchaseItemIds(ctx, itemIds)
}

// reconcilePurchaseTransaction brings the linked EXPENSE transaction in line
// with the purchase's payment status: PAID/PARTIAL owns exactly one, and
// PENDING/CANCELLED owns none.
func reconcilePurchaseTransaction(ctx context.Context, repos storage.Repos, purchase *models.Purchase) error {
	existing, err := repos.Transactions().GetByPurchaseId(ctx, purchase.ID)
	if err != nil {
		return err
	}

	if purchase.PaymentStatus.CreatesExpense() {
		if existing != nil {
			existing.Amount = purchase.TotalAmount
			existing.Date = purchase.PurchaseDate
			existing.Description = fmt.Sprintf("Purchase %s", purchase.InvoiceNumber)
			return repos.Transactions().Update(ctx, existing)
		}
		return repos.Transactions().Create(ctx, &models.Transaction{
			PharmacyId:  purchase.PharmacyId,
			Type:        models.TransactionTypeExpense,
			Amount:      purchase.TotalAmount,
			Date:        purchase.PurchaseDate,
			Description: fmt.Sprintf("Purchase %s", purchase.InvoiceNumber),
			PurchaseId:  &purchase.ID,
		})
	}

	if existing != nil {
		return repos.Transactions().Delete(ctx, existing.ID)
	}
	return nil
}

func validatePurchaseItems(items []models.NewPurchaseItem) error {
	for i, item := range items {
		if item.UnitPrice.IsNegative() {
			return utils.ValidationError(fmt.Sprintf("item %d: unit price cannot be negative", i))
		}
	}
	return nil
}

func sumPurchaseItems(items []models.NewPurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(itemTotal(item.Quantity, item.UnitPrice, item.TotalPrice))
	}
	return total
}

// itemTotal defaults a line total to quantity * unit price when the caller
// did not supply one.
func itemTotal(quantity int, unitPrice decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
