package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/transaction-server/internal/logging"
	"github.com/carson-networks/transaction-server/internal/operator"
)

// AddTransactionInput is the Huma input for adding a transaction.
type AddTransactionInput struct {
	Body *TransactionBody
}

// transactionAdder is the interface for adding transactions.
type transactionAdder interface {
	AddTransaction(ctx context.Context, amount any, description any) error
}

// AddTransactionHandler handles POST /transaction.
type AddTransactionHandler struct {
	TransactionService transactionAdder
}

// NewAddTransactionHandler creates a new AddTransactionHandler.
func NewAddTransactionHandler(svc transactionAdder) *AddTransactionHandler {
	return &AddTransactionHandler{TransactionService: svc}
}

// Register registers the add transaction endpoint with the Huma API.
func (h *AddTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "add-transaction",
		Method:      http.MethodPost,
		Path:        "/transaction",
		Summary:     "Add transaction",
		Description: "Adds a transaction. The new record's id is not returned; list the transactions to find it.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *AddTransactionHandler) handle(ctx context.Context, input *AddTransactionInput) (*MessageOutput, error) {
	logData := logging.GetLogData(ctx)
	amount, desc := bodyValues(input.Body)

	var stopTimer func()
	if logData != nil {
		if entry := logData.Log(); entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
			entry.Debugf("AddTransaction.Body %s", spew.Sdump(input.Body))
		}
		stopTimer = logData.AddTiming("addTransactionMs")
	}
	err := h.TransactionService.AddTransaction(ctx, amount, desc)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		// The request was cut short, not rejected.
		if errors.Is(err, operator.ErrStopped) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, huma.NewError(http.StatusInternalServerError, "Something went wrong", err)
		}
		// Any other failure, validation or store, is reported as bad input.
		return nil, huma.NewError(http.StatusBadRequest, "Invalid input", err)
	}

	return newMessageOutput("Added transaction successfully"), nil
}
