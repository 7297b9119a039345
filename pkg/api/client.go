package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/render"
)

// Client talks to a mailpreview server. It serves as the lister, renderer and sender
// of a session.Session.
type Client struct {
	baseURL string
	http    *http.Client
	test    *email.TestClient
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.test = email.NewTestClient(c.baseURL, email.WithTestHTTPClient(c.http))
	return c
}

// ListAll fetches the catalog. A 404 maps to catalog.ErrNotFound, every other failure
// wraps catalog.ErrInternal.
func (c *Client) ListAll(ctx context.Context) ([]catalog.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/emails", nil)
	if err != nil {
		return nil, errors.Join(catalog.ErrInternal, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(catalog.ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, catalog.ErrNotFound
	default:
		return nil, errors.Join(catalog.ErrInternal, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var entries []catalog.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, errors.Join(catalog.ErrInternal, err)
	}
	return entries, nil
}

// Render renders key on the server. Any failure is logged and yields an empty result.
func (c *Client) Render(ctx context.Context, key string, props map[string]any) (*render.Result, error) {
	res, err := c.render(ctx, key, props)
	if err != nil {
		c.logger.WarnContext(ctx, "remote render failed", logger.Template(key), logger.Error(err))
		return &render.Result{}, nil
	}
	return res, nil
}

func (c *Client) render(ctx context.Context, key string, props map[string]any) (*render.Result, error) {
	body, err := json.Marshal(renderRequest{Props: props})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/render/"+url.PathEscape(key), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, e.Error)
	}

	var res render.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SendTest posts req to the server's test send endpoint.
func (c *Client) SendTest(ctx context.Context, req email.TestRequest) (*email.TestResult, error) {
	return c.test.SendTest(ctx, req)
}
