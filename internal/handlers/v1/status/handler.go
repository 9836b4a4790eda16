package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/transaction-server/internal/logging"
)

const healthMessage = "This is the health check"

type Handler struct{}

func NewHandler() Handler {
	return Handler{}
}

// Handler answers the load balancer's health probe. It does not touch the
// database, so a healthy answer only means the process is serving.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return errors.New("status: method not GET")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(healthMessage)
}
