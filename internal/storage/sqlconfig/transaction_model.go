package sqlconfig

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransactionsTableName is the table every statement in this package targets.
const TransactionsTableName = "transactions"

// Transaction represents a transaction record.
type Transaction struct {
	ID          int64           `db:"id"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	Amount      decimal.Decimal
	Description string
}

// TransactionUpdate carries the fields an update overwrites. Both are always written.
type TransactionUpdate struct {
	Amount      decimal.Decimal
	Description string
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) error
	List(ctx context.Context) ([]*Transaction, error)
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	UpdateByID(ctx context.Context, id int64, update *TransactionUpdate) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
