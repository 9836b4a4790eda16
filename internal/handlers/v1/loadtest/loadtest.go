package loadtest

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	simulator "github.com/carson-networks/transaction-server/internal/loadtest"
	"github.com/carson-networks/transaction-server/internal/logging"
)

// loadSimulator is the part of simulator.Simulator the handlers drive.
type loadSimulator interface {
	Start() bool
	Stop() bool
	Sample() simulator.Usage
}

type StartLoadTestInput struct{}

type UsageResponse struct {
	CPUUsage    float64 `json:"cpuUsage" doc:"Simulated CPU usage percentage"`
	MemoryUsage float64 `json:"memoryUsage" doc:"Simulated memory usage percentage"`
}

type StartLoadTestOutput struct {
	Body UsageResponse
}

// StartLoadTestHandler handles GET /load-test.
type StartLoadTestHandler struct {
	Simulator loadSimulator
}

func NewStartLoadTestHandler(sim loadSimulator) *StartLoadTestHandler {
	return &StartLoadTestHandler{Simulator: sim}
}

func (h *StartLoadTestHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "start-load-test",
		Method:      http.MethodGet,
		Path:        "/load-test",
		Summary:     "Start load test",
		Description: "Starts the synthetic CPU load if it is not already running and returns simulated usage figures.",
		Tags:        []string{"Diagnostics"},
	}, h.handle)
}

func (h *StartLoadTestHandler) handle(ctx context.Context, input *StartLoadTestInput) (*StartLoadTestOutput, error) {
	started := h.Simulator.Start()
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("loadTestStarted", started)
	}

	usage := h.Simulator.Sample()
	return &StartLoadTestOutput{Body: UsageResponse{
		CPUUsage:    usage.CPUUsage,
		MemoryUsage: usage.MemoryUsage,
	}}, nil
}

type StopLoadTestInput struct{}

type StopLoadTestResponse struct {
	Message string `json:"message"`
}

type StopLoadTestOutput struct {
	Body StopLoadTestResponse
}

// StopLoadTestHandler handles POST /stop-load-test.
type StopLoadTestHandler struct {
	Simulator loadSimulator
}

func NewStopLoadTestHandler(sim loadSimulator) *StopLoadTestHandler {
	return &StopLoadTestHandler{Simulator: sim}
}

func (h *StopLoadTestHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "stop-load-test",
		Method:      http.MethodPost,
		Path:        "/stop-load-test",
		Summary:     "Stop load test",
		Tags:        []string{"Diagnostics"},
	}, h.handle)
}

func (h *StopLoadTestHandler) handle(ctx context.Context, input *StopLoadTestInput) (*StopLoadTestOutput, error) {
	stopped := h.Simulator.Stop()
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("loadTestStopped", stopped)
	}

	return &StopLoadTestOutput{Body: StopLoadTestResponse{Message: "Load test stopped successfully"}}, nil
}
