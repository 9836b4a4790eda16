package transaction

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/transaction-server/internal/logging"
)

// DeleteTransactionInput is the Huma input for deleting one transaction.
type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction ID"`
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id int64) error
}

// DeleteTransactionHandler handles DELETE /transaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Deletes one transaction. Deleting an id that does not exist succeeds.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*MessageOutput, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", input.ID)
	}

	message := fmt.Sprintf("Transaction with ID %s deleted successfully.", input.ID)

	id, ok := parseID(input.ID)
	if !ok {
		// Nothing can match, which is the same outcome as deleting a missing id.
		return newMessageOutput(message), nil
	}

	if err := h.TransactionService.DeleteTransaction(ctx, id); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error deleting transaction", err)
	}

	return newMessageOutput(message), nil
}

// DeleteAllTransactionsInput is the Huma input for deleting every transaction.
type DeleteAllTransactionsInput struct{}

type allTransactionsDeleter interface {
	DeleteAllTransactions(ctx context.Context) error
}

// DeleteAllTransactionsHandler handles DELETE /transaction.
type DeleteAllTransactionsHandler struct {
	TransactionService allTransactionsDeleter
}

func NewDeleteAllTransactionsHandler(svc allTransactionsDeleter) *DeleteAllTransactionsHandler {
	return &DeleteAllTransactionsHandler{TransactionService: svc}
}

func (h *DeleteAllTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-all-transactions",
		Method:      http.MethodDelete,
		Path:        "/transaction",
		Summary:     "Delete all transactions",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteAllTransactionsHandler) handle(ctx context.Context, input *DeleteAllTransactionsInput) (*MessageOutput, error) {
	if err := h.TransactionService.DeleteAllTransactions(ctx); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Deleting all transactions may have failed.", err)
	}

	return newMessageOutput("All transactions deleted successfully."), nil
}
