package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStore(t *testing.T) {
	okBefore := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("insert", "ok"))
	errBefore := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("insert", "error"))

	ObserveStore("insert", nil)
	ObserveStore("insert", errors.New("down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("insert", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("insert", "error")))
}

func TestMiddleware_CountsStatus(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(http.MethodDelete, "404"))

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/transaction/1", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues(http.MethodDelete, "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	LoadTestRunning.Set(1)
	defer LoadTestRunning.Set(0)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "transaction_server_load_test_running 1")
}
