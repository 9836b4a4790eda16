package instance

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/transaction-server/internal/logging"
)

type GetInstanceIDInput struct{}

type InstanceIDResponse struct {
	InstanceID string `json:"instanceId" doc:"EC2 instance id of the serving host"`
}

type GetInstanceIDOutput struct {
	Body InstanceIDResponse
}

type instanceIDFetcher interface {
	InstanceID(ctx context.Context) (string, error)
}

// GetInstanceIDHandler handles GET /instance-id.
type GetInstanceIDHandler struct {
	Fetcher instanceIDFetcher
}

func NewGetInstanceIDHandler(fetcher instanceIDFetcher) *GetInstanceIDHandler {
	return &GetInstanceIDHandler{Fetcher: fetcher}
}

func (h *GetInstanceIDHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-instance-id",
		Method:      http.MethodGet,
		Path:        "/instance-id",
		Summary:     "Get instance id",
		Description: "Looks up the EC2 instance id through the instance metadata service.",
		Tags:        []string{"Diagnostics"},
	}, h.handle)
}

func (h *GetInstanceIDHandler) handle(ctx context.Context, input *GetInstanceIDInput) (*GetInstanceIDOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("instanceIDMs")
	}
	id, err := h.Fetcher.InstanceID(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Not running in EC2 or unable to fetch instance ID", err)
	}

	return &GetInstanceIDOutput{Body: InstanceIDResponse{InstanceID: id}}, nil
}
