package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	Description string
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		Amount:      row.Amount,
		Description: row.Description,
	}
}
