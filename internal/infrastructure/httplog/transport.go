// Package httplog wraps an http.RoundTripper and logs outgoing provider
// requests and their responses: method, URL, latency and status.
//
// Bodies are never dumped since they carry audio or user text.
// Intended for local debugging; enable with HTTP_DEBUG=true.
package httplog

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"speech-upload-app/internal/logging"
)

// Transport logs every round trip at debug level.
type Transport struct {
	Base   http.RoundTripper
	logger *log.Logger
}

func NewTransport(base http.RoundTripper, logger *log.Logger) *Transport {
	return &Transport{Base: base, logger: logging.Component(logger, "http")}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := t.Base
	if rt == nil {
		rt = http.DefaultTransport
	}
	return trace(t.logger, req, rt.RoundTrip)
}

// Doer is the client shape the AWS SDK accepts (aws.HTTPClient).
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type doer struct {
	base   Doer
	logger *log.Logger
}

// WrapDoer logs every call made through base. Use it on clients that must keep
// their own type-specific configuration, such as the SDK's BuildableClient.
func WrapDoer(base Doer, logger *log.Logger) Doer {
	return &doer{base: base, logger: logging.Component(logger, "http")}
}

func (d *doer) Do(req *http.Request) (*http.Response, error) {
	return trace(d.logger, req, d.base.Do)
}

func trace(logger *log.Logger, req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	start := time.Now()
	logger.Debug("->", "method", req.Method, "url", req.URL.String(), "content_length", req.ContentLength)

	resp, err := next(req)
	if err != nil {
		logger.Debug("<- error", "err", err, "elapsed", time.Since(start))
		return resp, err
	}

	logger.Debug("<-", "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, err
}

// Client returns an *http.Client using the logging transport when enabled,
// or http.DefaultClient otherwise.
func Client(enabled bool, logger *log.Logger) *http.Client {
	if !enabled {
		return http.DefaultClient
	}
	return &http.Client{Transport: NewTransport(http.DefaultTransport, logger)}
}
