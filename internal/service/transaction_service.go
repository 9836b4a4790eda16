package service

import (
	"context"

	"github.com/carson-networks/transaction-server/internal/metrics"
	"github.com/carson-networks/transaction-server/internal/operator"
	"github.com/carson-networks/transaction-server/internal/operator/actions"
	"github.com/carson-networks/transaction-server/internal/storage"
)

// TransactionService handles transaction business logic. Reads go straight
// to the table and are counted here; writes are queued through the operator,
// which counts them under the action's name.
type TransactionService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op *operator.OperatorDelegator) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// AddTransaction validates amount and description and inserts a new record.
// The new record's id is not returned.
func (s *TransactionService) AddTransaction(ctx context.Context, amount any, description any) error {
	parsedAmount, err := ParseAmount(amount)
	if err != nil {
		return err
	}
	desc, err := ParseDescription(description)
	if err != nil {
		return err
	}

	return s.operator.Process(ctx, &actions.CreateTransaction{
		Amount:      parsedAmount,
		Description: desc,
	})
}

// ListTransactions returns every record in storage order.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx)
	metrics.ObserveStore("list", err)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromStorage(row)
	}
	return transactions, nil
}

// GetTransaction returns the record with id, or nil when there is none.
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	metrics.ObserveStore("find", err)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	transaction := transactionFromStorage(row)
	return &transaction, nil
}

// UpdateTransaction overwrites amount and description of id. Updating an id
// that does not exist succeeds without changing anything.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id int64, amount any, description any) error {
	parsedAmount, desc, err := parseUpdate(amount, description)
	if err != nil {
		return err
	}

	return s.operator.Process(ctx, &actions.UpdateTransaction{
		ID:          id,
		Amount:      parsedAmount,
		Description: desc,
	})
}

// DeleteTransaction removes id if present.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
}

// DeleteAllTransactions removes every record.
func (s *TransactionService) DeleteAllTransactions(ctx context.Context) error {
	return s.operator.Process(ctx, &actions.DeleteAllTransactions{})
}
