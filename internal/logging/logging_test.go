package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging()
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	fields := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &fields))
	return fields
}

func TestLogData_RequestIDAndFields(t *testing.T) {
	logger, buf := newBufferedLogger()
	logData := NewLogData(logger)
	logData.AddData("transactionCount", 3)
	stop := logData.AddTiming("listMs")
	stop()

	assert.NotEmpty(t, logData.RequestID())

	logData.Log().Info("done")
	fields := lastLine(t, buf)
	assert.Equal(t, logData.RequestID(), fields["requestID"])
	assert.Equal(t, float64(3), fields["transactionCount"])
	assert.Contains(t, fields, "listMs")
	assert.Equal(t, "info", fields["loglevel"])
}

func TestGetLogData_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetLogData(req.Context()))
}

func TestMiddleware_LogsStatus(t *testing.T) {
	logger, buf := newBufferedLogger()

	var seen *LogData
	handler := Middleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetLogData(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transaction/9", nil))

	require.NotNil(t, seen)
	assert.Equal(t, http.StatusNotFound, w.Code)

	fields := lastLine(t, buf)
	assert.Equal(t, "Request.Complete", fields["msg"])
	assert.Equal(t, float64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "/transaction/9", fields["path"])
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, buf := newBufferedLogger()

	handler := LoggingWrapper("Health", logger, func(w http.ResponseWriter, r *http.Request, logData *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("boom")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	fields := lastLine(t, buf)
	assert.Equal(t, "Handler.Health.Error", fields["msg"])
	assert.Equal(t, "boom", fields["error"])
}

func TestSetLevel(t *testing.T) {
	logger := SetupLogging()
	assert.NoError(t, SetLevel(logger, "debug"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Error(t, SetLevel(logger, "loud"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}
