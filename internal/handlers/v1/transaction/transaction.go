package transaction

import (
	"strconv"
	"strings"

	"github.com/carson-networks/transaction-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          int64   `json:"id" doc:"Transaction ID"`
	Amount      float64 `json:"amount" doc:"Amount with two fractional digits"`
	Description string  `json:"description" doc:"Description"`
}

// TransactionBody is the request body for creating or updating a transaction.
// Both fields are loosely typed: amount may be a number or a numeric string,
// and the handlers coerce them.
type TransactionBody struct {
	_      struct{} `json:"-" additionalProperties:"true"`
	Amount any      `json:"amount,omitempty" doc:"Amount, as a number or numeric string"`
	Desc   any      `json:"desc,omitempty" doc:"Description, must not be blank"`
}

// MessageResponse is the body of every write endpoint's success response.
type MessageResponse struct {
	Message string `json:"message" doc:"Outcome of the operation"`
}

// MessageOutput is the Huma output for endpoints that answer with a message.
type MessageOutput struct {
	Body MessageResponse
}

func newMessageOutput(message string) *MessageOutput {
	return &MessageOutput{Body: MessageResponse{Message: message}}
}

func toAPITransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Amount:      tx.Amount.InexactFloat64(),
		Description: tx.Description,
	}
}

func bodyValues(body *TransactionBody) (amount any, desc any) {
	if body == nil {
		return nil, nil
	}
	return body.Amount, body.Desc
}

// parseID reports whether raw names a storable id. Any other value, including
// one that overflows int64, matches no record.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id, err == nil
}
