package actions

import (
	"context"

	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

// IAction is one write against the transactions table, run by an Operator.
type IAction interface {
	Name() string
	Perform(ctx context.Context, table sqlconfig.ITransactionTable) error
}
