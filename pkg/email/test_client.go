package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTestPath is the endpoint TestClient posts to, relative to its base URL.
const DefaultTestPath = "/api/send/test"

// TestRequest is the payload of a test send.
type TestRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// TestResult carries the HTTP status of a test send and the server's error message, if any.
type TestResult struct {
	StatusCode int
	Error      string
}

// TestClient dispatches test sends to a mailpreview server over HTTP.
type TestClient struct {
	baseURL string
	path    string
	http    *http.Client
}

// TestClientOption configures a TestClient.
type TestClientOption func(*TestClient)

// WithTestHTTPClient overrides the HTTP client.
func WithTestHTTPClient(hc *http.Client) TestClientOption {
	return func(c *TestClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTestPath overrides the endpoint path.
func WithTestPath(path string) TestClientOption {
	return func(c *TestClient) {
		c.path = path
	}
}

// NewTestClient creates a client posting to baseURL.
func NewTestClient(baseURL string, opts ...TestClientOption) *TestClient {
	c := &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    DefaultTestPath,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendTest posts req as JSON. Non-2xx statuses are not errors: they are reported
// through TestResult so callers can distinguish rate limiting from other failures.
func (c *TestClient) SendTest(ctx context.Context, req TestRequest) (*TestResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal test request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrFailedToSendEmail, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Join(ErrFailedToSendEmail, err)
	}
	defer func() { _ = resp.Body.Close() }()

	result := &TestResult{StatusCode: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return result, nil
	}

	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err == nil {
		result.Error = payload.Error
	} else {
		result.Error = strings.TrimSpace(string(raw))
	}

	return result, nil
}
