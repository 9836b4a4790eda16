package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

// UpdateTransaction overwrites both fields of a record. The record does not
// have to exist.
type UpdateTransaction struct {
	ID          int64
	Amount      decimal.Decimal
	Description string
}

func (t *UpdateTransaction) Name() string {
	return "update"
}

func (t *UpdateTransaction) Perform(ctx context.Context, table sqlconfig.ITransactionTable) error {
	return table.UpdateByID(ctx, t.ID, &sqlconfig.TransactionUpdate{
		Amount:      t.Amount,
		Description: t.Description,
	})
}
