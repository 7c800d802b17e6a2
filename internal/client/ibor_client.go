// Package client is the typed gateway to the IBOR backend REST API.
// Every operation issues exactly one request: no retry, no caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
)

const maxResponseBytes = 1 << 20

// IborClient communicates with the IBOR backend.
type IborClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// Option customises an IborClient.
type Option func(*IborClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *IborClient) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *IborClient) { c.httpClient = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *common.Logger) Option {
	return func(c *IborClient) { c.logger = l }
}

// NewIborClient creates a client targeting the given backend URL.
func NewIborClient(baseURL string, opts ...Option) *IborClient {
	c := &IborClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = common.NewSilentLogger()
	}
	return c
}

// BaseURL returns the backend URL the client targets.
func (c *IborClient) BaseURL() string {
	return c.baseURL
}

// get issues GET path?query and strictly decodes the body into out.
func (c *IborClient) get(ctx context.Context, op, path string, query url.Values, out any, required ...string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return c.do(req, op, out, required)
}

// post issues POST path with a JSON body and strictly decodes the reply into out.
func (c *IborClient) post(ctx context.Context, op, path string, in, out any, required ...string) error {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, op, out, required)
}

func (c *IborClient) do(req *http.Request, op string, out any, required []string) error {
	req.Header.Set("Accept", "application/json")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("op", op).Err(err).Msg("Backend request failed")
		return &Error{Op: op, Err: fmt.Errorf("failed to reach ibor-server: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug().
		Str("op", op).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	if err := decodeStrict(body, out, required); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// decodeStrict rejects unknown fields at any depth, trailing data, and
// top-level objects missing any of the required keys.
func decodeStrict(body []byte, out any, required []string) error {
	if len(required) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return err
		}
		for _, key := range required {
			if _, ok := fields[key]; !ok {
				return fmt.Errorf("missing field %q", key)
			}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
