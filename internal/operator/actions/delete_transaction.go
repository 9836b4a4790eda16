package actions

import (
	"context"

	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

type DeleteTransaction struct {
	ID int64
}

func (t *DeleteTransaction) Name() string {
	return "delete"
}

func (t *DeleteTransaction) Perform(ctx context.Context, table sqlconfig.ITransactionTable) error {
	return table.DeleteByID(ctx, t.ID)
}

type DeleteAllTransactions struct{}

func (t *DeleteAllTransactions) Name() string {
	return "deleteAll"
}

func (t *DeleteAllTransactions) Perform(ctx context.Context, table sqlconfig.ITransactionTable) error {
	return table.DeleteAll(ctx)
}
