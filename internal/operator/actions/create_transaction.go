package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Amount      decimal.Decimal
	Description string
}

func (t *CreateTransaction) Name() string {
	return "insert"
}

func (t *CreateTransaction) Perform(ctx context.Context, table sqlconfig.ITransactionTable) error {
	return table.Insert(ctx, &sqlconfig.TransactionCreate{
		Amount:      t.Amount,
		Description: t.Description,
	})
}
