package service

import (
	"github.com/carson-networks/transaction-server/internal/operator"
	"github.com/carson-networks/transaction-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage and write queue.
func NewService(store *storage.Storage, op *operator.OperatorDelegator) *Service {
	return &Service{
		Transaction: NewTransactionService(store, op),
	}
}
