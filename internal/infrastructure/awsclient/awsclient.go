// Package awsclient loads the shared aws.Config and classifies SDK errors.
package awsclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"
	"github.com/charmbracelet/log"

	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/infrastructure/httplog"
)

// Options tune config loading. Zero values defer to the SDK's default chain.
type Options struct {
	Region      string
	Profile     string
	EndpointURL string
	// Debug wraps the SDK's own HTTP client so every call is logged to Logger.
	Debug  bool
	Logger *log.Logger
}

// Load resolves credentials and region the way the AWS CLI does.
func Load(ctx context.Context, o Options) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if o.Region != "" {
		opts = append(opts, config.WithRegion(o.Region))
	}
	if o.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(o.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	if o.EndpointURL != "" {
		cfg.BaseEndpoint = aws.String(o.EndpointURL)
	}
	// Wrapping after load keeps the BuildableClient the SDK configured
	// (AWS_CA_BUNDLE, timeouts) underneath the logger.
	if o.Debug && cfg.HTTPClient != nil {
		cfg.HTTPClient = httplog.WrapDoer(cfg.HTTPClient, o.Logger)
	}
	return cfg, nil
}

// Classify tags an SDK error returned by op.
//
// Error responses from the service are ClientRequest, except server faults
// which count as Transport together with every other failure inside the SDK
// (dial errors, timeouts, missing credentials). Anything else is Unexpected.
func Classify(op string, err error) *fault.Error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorFault() == smithy.FaultServer {
			return fault.New(fault.Transport, op, err)
		}
		return fault.New(fault.ClientRequest, op, err)
	}
	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		return fault.New(fault.Transport, op, err)
	}
	return fault.New(fault.Unexpected, op, err)
}

// ResponseDetails extracts the HTTP status and request id carried by an SDK error.
func ResponseDetails(err error) (status int, requestID string) {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode(), respErr.ServiceRequestID()
	}
	return 0, ""
}
