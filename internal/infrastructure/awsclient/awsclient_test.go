package awsclient

import (
	"bytes"
	"context"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/logging"
)

func opErr(err error) error {
	return &smithy.OperationError{ServiceID: "Polly", OperationName: "SynthesizeSpeech", Err: err}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want fault.Kind
	}{
		{
			name: "client fault",
			err:  opErr(&smithy.GenericAPIError{Code: "TextLengthExceededException", Fault: smithy.FaultClient}),
			want: fault.ClientRequest,
		},
		{
			name: "unknown fault",
			err:  opErr(&smithy.GenericAPIError{Code: "AccessDenied"}),
			want: fault.ClientRequest,
		},
		{
			name: "server fault",
			err:  opErr(&smithy.GenericAPIError{Code: "ServiceFailureException", Fault: smithy.FaultServer}),
			want: fault.Transport,
		},
		{
			name: "send failure",
			err:  opErr(&smithyhttp.RequestSendError{Err: errors.New("dial tcp: connection refused")}),
			want: fault.Transport,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: fault.Unexpected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("synthesize", tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestResponseDetails(t *testing.T) {
	err := opErr(&awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusBadRequest}},
			Err:      &smithy.GenericAPIError{Code: "InvalidSsmlException"},
		},
		RequestID: "req-42",
	})

	status, id := ResponseDetails(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "req-42", id)

	status, id = ResponseDetails(errors.New("boom"))
	assert.Zero(t, status)
	assert.Empty(t, id)
}

func setStaticEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))
	t.Setenv("AWS_CA_BUNDLE", "")
}

func TestLoadAppliesOverrides(t *testing.T) {
	setStaticEnv(t)

	cfg, err := Load(context.Background(), Options{
		Region:      "eu-west-1",
		EndpointURL: "http://localhost:4566",
	})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	require.NotNil(t, cfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *cfg.BaseEndpoint)
	assert.IsType(t, &awshttp.BuildableClient{}, cfg.HTTPClient)
}

func TestLoadDebugWithCABundle(t *testing.T) {
	setStaticEnv(t)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bundle := filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	require.NoError(t, os.WriteFile(bundle, pemBytes, 0o600))
	t.Setenv("AWS_CA_BUNDLE", bundle)

	var logs bytes.Buffer
	cfg, err := Load(context.Background(), Options{
		Region: "us-east-1",
		Debug:  true,
		Logger: logging.New("debug", &logs),
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/speech", nil)
	require.NoError(t, err)
	resp, err := cfg.HTTPClient.Do(req)
	require.NoError(t, err, "client must trust the bundle")
	resp.Body.Close()

	assert.Contains(t, logs.String(), "[http]")
	assert.Contains(t, logs.String(), "status=200")
}
