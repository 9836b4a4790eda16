package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/transaction-server/internal/logging"
	"github.com/carson-networks/transaction-server/internal/service"
)

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction ID"`
	Body *TransactionBody
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id int64, amount any, description any) error
}

// UpdateTransactionHandler handles PUT /transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Overwrites amount and description. Updating an id that does not exist succeeds and changes nothing.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*MessageOutput, error) {
	logData := logging.GetLogData(ctx)
	amount, desc := bodyValues(input.Body)

	var stopTimer func()
	if logData != nil {
		logData.AddData("transactionID", input.ID)
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	var err error
	if id, ok := parseID(input.ID); ok {
		err = h.TransactionService.UpdateTransaction(ctx, id, amount, desc)
	} else {
		// No record can match; only the values are checked.
		err = service.ValidateUpdate(amount, desc)
	}
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return nil, huma.NewError(http.StatusBadRequest, "Invalid input", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error updating transaction", err)
	}

	return newMessageOutput("Transaction updated successfully"), nil
}
