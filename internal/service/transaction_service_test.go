package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/transaction-server/internal/operator"
	"github.com/carson-networks/transaction-server/internal/storage"
	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

func newTestService(t *testing.T) (*TransactionService, *sqlconfig.MockITransactionTable) {
	t.Helper()
	mockTable := sqlconfig.NewMockITransactionTable(t)
	store := &storage.Storage{Transactions: mockTable}
	op := operator.NewOperatorDelegator(mockTable, 1)
	op.Start()
	t.Cleanup(op.Stop)
	svc := NewTransactionService(store, op)
	return svc, mockTable
}

// -- AddTransaction tests --

func TestAddTransaction_Success(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.TransactionCreate) bool {
		return c.Amount.Equal(decimal.RequireFromString("12.50")) && c.Description == "Books"
	})).Return(nil)

	err := svc.AddTransaction(context.Background(), "12.50", "Books")
	assert.NoError(t, err)
}

func TestAddTransaction_JSONNumberAmount(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.TransactionCreate) bool {
		return c.Amount.Equal(decimal.RequireFromString("7.25"))
	})).Return(nil)

	assert.NoError(t, svc.AddTransaction(context.Background(), 7.25, "Lunch"))
}

func TestAddTransaction_DescriptionKeptUntrimmed(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.TransactionCreate) bool {
		return c.Description == "  Books  "
	})).Return(nil)

	assert.NoError(t, svc.AddTransaction(context.Background(), "1", "  Books  "))
}

func TestAddTransaction_InvalidAmount(t *testing.T) {
	svc, mockTable := newTestService(t)

	err := svc.AddTransaction(context.Background(), "abc", "Books")
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockTable.AssertNotCalled(t, "Insert")
}

func TestAddTransaction_AmountOutOfRange(t *testing.T) {
	svc, mockTable := newTestService(t)

	for _, amount := range []any{"1e999999999", "100000000", -1e12} {
		err := svc.AddTransaction(context.Background(), amount, "Books")
		assert.ErrorIs(t, err, ErrInvalidInput, "amount %v", amount)
	}
	mockTable.AssertNotCalled(t, "Insert")
}

func TestAddTransaction_EmptyDescription(t *testing.T) {
	svc, mockTable := newTestService(t)

	for _, desc := range []any{"", "   ", nil, 42.0} {
		err := svc.AddTransaction(context.Background(), "10.00", desc)
		assert.ErrorIs(t, err, ErrInvalidInput, "description %v", desc)
	}
	mockTable.AssertNotCalled(t, "Insert")
}

func TestAddTransaction_StorageError(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().Insert(mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := svc.AddTransaction(context.Background(), "10.00", "Test")
	assert.EqualError(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

// -- ListTransactions tests --

func TestListTransactions_NoResults(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().List(mock.Anything).Return([]*sqlconfig.Transaction{}, nil)

	txs, err := svc.ListTransactions(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestListTransactions_MapsRows(t *testing.T) {
	svc, mockTable := newTestService(t)

	rows := []*sqlconfig.Transaction{
		{ID: 1, Amount: decimal.RequireFromString("12.50"), Description: "Books"},
		{ID: 2, Amount: decimal.RequireFromString("3.00"), Description: "Pens"},
	}
	mockTable.EXPECT().List(mock.Anything).Return(rows, nil)

	txs, err := svc.ListTransactions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, int64(1), txs[0].ID)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "Books", txs[0].Description)
	assert.Equal(t, int64(2), txs[1].ID)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().List(mock.Anything).Return(nil, errors.New("database unavailable"))

	txs, err := svc.ListTransactions(context.Background())
	assert.EqualError(t, err, "database unavailable")
	assert.Nil(t, txs)
}

// -- GetTransaction tests --

func TestGetTransaction_Found(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().FindByID(mock.Anything, int64(4)).
		Return(&sqlconfig.Transaction{ID: 4, Amount: decimal.RequireFromString("9.99"), Description: "Tea"}, nil)

	tx, err := svc.GetTransaction(context.Background(), 4)
	assert.NoError(t, err)
	assert.NotNil(t, tx)
	assert.Equal(t, int64(4), tx.ID)
	assert.Equal(t, "Tea", tx.Description)
}

func TestGetTransaction_NotFound(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().FindByID(mock.Anything, int64(999)).Return(nil, nil)

	tx, err := svc.GetTransaction(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, tx)
}

func TestGetTransaction_StorageError(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().FindByID(mock.Anything, int64(4)).Return(nil, errors.New("timeout"))

	tx, err := svc.GetTransaction(context.Background(), 4)
	assert.Error(t, err)
	assert.Nil(t, tx)
}

// -- UpdateTransaction tests --

func TestUpdateTransaction_Success(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().UpdateByID(mock.Anything, int64(3), mock.MatchedBy(func(u *sqlconfig.TransactionUpdate) bool {
		return u.Amount.Equal(decimal.RequireFromString("20")) && u.Description == "Atlas"
	})).Return(nil)

	assert.NoError(t, svc.UpdateTransaction(context.Background(), 3, "20", "Atlas"))
}

func TestUpdateTransaction_MissingIDIsNoOp(t *testing.T) {
	svc, mockTable := newTestService(t)

	// The table reports success for zero affected rows; so does the service.
	mockTable.EXPECT().UpdateByID(mock.Anything, int64(999), mock.Anything).Return(nil)

	assert.NoError(t, svc.UpdateTransaction(context.Background(), 999, "1.00", "Ghost"))
}

func TestUpdateTransaction_InvalidAmount(t *testing.T) {
	svc, mockTable := newTestService(t)

	err := svc.UpdateTransaction(context.Background(), 3, "x", "Atlas")
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockTable.AssertNotCalled(t, "UpdateByID")
}

func TestUpdateTransaction_AmountOutOfRange(t *testing.T) {
	svc, mockTable := newTestService(t)

	err := svc.UpdateTransaction(context.Background(), 3, "1e999999999", "Atlas")
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockTable.AssertNotCalled(t, "UpdateByID")
}

func TestUpdateTransaction_MissingDescription(t *testing.T) {
	svc, mockTable := newTestService(t)

	err := svc.UpdateTransaction(context.Background(), 3, "1", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockTable.AssertNotCalled(t, "UpdateByID")
}

// -- Delete tests --

func TestDeleteTransaction_Success(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().DeleteByID(mock.Anything, int64(999)).Return(nil)

	assert.NoError(t, svc.DeleteTransaction(context.Background(), 999))
}

func TestDeleteTransaction_StorageError(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().DeleteByID(mock.Anything, int64(1)).Return(errors.New("lock wait timeout"))

	assert.EqualError(t, svc.DeleteTransaction(context.Background(), 1), "lock wait timeout")
}

func TestDeleteAllTransactions(t *testing.T) {
	svc, mockTable := newTestService(t)

	mockTable.EXPECT().DeleteAll(mock.Anything).Return(nil)

	assert.NoError(t, svc.DeleteAllTransactions(context.Background()))
}
