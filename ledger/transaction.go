package ledger

import (
	"context"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
	"github.com/medilinkhq/pharmacy_backend/utils"
)

// TransactionLog reads the derived financial records. INCOME and EXPENSE rows
// are written by the purchase and sale ledgers; the log only lists them and
// allows deleting the rare unlinked row.
type TransactionLog struct {
	store storage.Store
}

func NewTransactionLog(store storage.Store) *TransactionLog {
	return &TransactionLog{store: store}
}

func (l *TransactionLog) Get(ctx context.Context, pharmacyId string, id int) (*models.Transaction, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	return l.store.Transactions().GetByID(ctx, pharmacyId, id)
}

func (l *TransactionLog) List(ctx context.Context, pharmacyId string, filter models.TransactionFilter) ([]models.Transaction, error) {
	if pharmacyId == "" {
		return nil, utils.ValidationError("pharmacy id is required")
	}
	transactions, err := l.store.Transactions().List(ctx, pharmacyId, filter)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// Delete removes an unlinked transaction. Rows linked to a purchase or sale
// are owned by that document and go away only when it does.
func (l *TransactionLog) Delete(ctx context.Context, id int, pharmacyId string) error {
	if pharmacyId == "" {
		return utils.ValidationError("pharmacy id is required")
	}
	t, err := l.store.Transactions().GetByID(ctx, pharmacyId, id)
	if err != nil {
		return err
	}
	if t.Linked() {
		return utils.ValidationError("transaction is linked to a purchase or sale; delete the source document instead")
	}
	return l.store.Transactions().Delete(ctx, t.ID)
}
