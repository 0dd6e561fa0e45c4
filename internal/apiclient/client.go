// Package apiclient is the gateway to the URL-shortening backend.
//
// A single Client is shared by every page handler. Per-request identity
// (language and bearer token) travels in the context and is applied by an
// outgoing interceptor; see WithLanguage and WithToken.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urlio/urlio-web/internal/metrics"
)

// maxResponseBody bounds how much of a backend response is read.
const maxResponseBody = 4 << 20

// Options configures a Client.
type Options struct {
	// BaseURL of the backend, e.g. http://localhost:8000.
	BaseURL string
	// DefaultLanguage is sent when the context carries none.
	DefaultLanguage string
	// Timeout is the total request timeout; zero means none.
	Timeout time.Duration
	// Recorder receives one observation per call. Optional.
	Recorder metrics.Recorder
	// Transport overrides the underlying round tripper. Optional.
	Transport http.RoundTripper
}

// Client calls the backend API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	recorder   metrics.Recorder
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", opts.BaseURL)
	}

	lang := opts.DefaultLanguage
	if lang == "" {
		lang = "tr"
	}

	var rt http.RoundTripper = newTransport()
	if opts.Transport != nil {
		rt = opts.Transport
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &interceptor{base: rt, defaultLanguage: lang},
			// The backend's own redirects (bare short codes) are never
			// followed by API calls.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		recorder: recorder,
	}, nil
}

// ResolveURL builds the absolute backend URL for an escaped path.
func (c *Client) ResolveURL(path string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

// do sends one request and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ResolveURL(path), reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.ObserveAPICall(operation, metrics.OutcomeNetworkError, time.Since(start))
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	duration := time.Since(start)
	if err != nil {
		c.recorder.ObserveAPICall(operation, metrics.OutcomeNetworkError, duration)
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome := metrics.OutcomeClientError
		if resp.StatusCode >= 500 {
			outcome = metrics.OutcomeServerError
		}
		c.recorder.ObserveAPICall(operation, outcome, duration)
		return &Error{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(data),
		}
	}

	c.recorder.ObserveAPICall(operation, metrics.OutcomeSuccess, duration)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

// ErrInvalidArgument is returned before any HTTP call when an argument
// cannot produce a meaningful request.
var ErrInvalidArgument = errors.New("invalid argument")
