package metadata

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

const (
	instanceIDPath = "instance-id"
	defaultTimeout = 3 * time.Second
)

// InstanceIDFetcher looks up the id of the machine the server runs on.
type InstanceIDFetcher interface {
	InstanceID(ctx context.Context) (string, error)
}

// IMDSFetcher reads the instance id from the EC2 instance metadata service.
// The client first PUTs for a session token and then GETs the value with the
// token header set.
type IMDSFetcher struct {
	client  *imds.Client
	timeout time.Duration
}

var _ InstanceIDFetcher = (*IMDSFetcher)(nil)

// NewIMDSFetcher builds a fetcher. An empty endpoint means the standard
// link-local address.
func NewIMDSFetcher(endpoint string) *IMDSFetcher {
	options := imds.Options{
		// Off EC2 the address does not answer; fail once instead of retrying.
		Retryer: aws.NopRetryer{},
	}
	if endpoint != "" {
		options.Endpoint = endpoint
	}

	return &IMDSFetcher{
		client:  imds.New(options),
		timeout: defaultTimeout,
	}
}

func (f *IMDSFetcher) InstanceID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	out, err := f.client.GetMetadata(ctx, &imds.GetMetadataInput{Path: instanceIDPath})
	if err != nil {
		return "", fmt.Errorf("imds.GetMetadata: %w", err)
	}
	defer out.Content.Close()

	body, err := io.ReadAll(out.Content)
	if err != nil {
		return "", fmt.Errorf("read instance id: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}
