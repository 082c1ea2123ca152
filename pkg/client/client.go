// Package client is a small HTTP client for the arenito API, used by the
// chat and catalog commands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/papercomputeco/arenito/api"
	"github.com/papercomputeco/arenito/pkg/catalog"
	"github.com/papercomputeco/arenito/pkg/conversation"
)

const defaultTimeout = 90 * time.Second

// APIError is a non-2xx answer from the server. Detail is the server's
// human-readable message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

// Client talks to one arenito server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the server at baseURL (scheme + host + port).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the server base URL.
func (c *Client) Target() string {
	return c.baseURL
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (api.HealthStatus, error) {
	var out api.HealthStatus
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Catalog calls GET /api/catalog.
func (c *Client) Catalog(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &out)
	return out, err
}

// Product calls GET /api/catalog/:weightKg. A 404 is reported as
// catalog.ErrNotFound.
func (c *Client) Product(ctx context.Context, weightKg int) (catalog.Product, error) {
	var out catalog.Product
	err := c.do(ctx, http.MethodGet, "/api/catalog/"+strconv.Itoa(weightKg), nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return catalog.Product{}, fmt.Errorf("%d kg: %w", weightKg, catalog.ErrNotFound)
	}
	return out, err
}

// Chat calls POST /api/chat with the full caller-owned history.
func (c *Client) Chat(ctx context.Context, message string, history conversation.History) (api.ChatResponse, error) {
	if history == nil {
		history = conversation.History{}
	}

	var out api.ChatResponse
	err := c.do(ctx, http.MethodPost, "/api/chat", api.ChatRequest{
		Message: message,
		History: history,
	}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e api.ErrorResponse
		_ = json.Unmarshal(data, &e)
		return &APIError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	return nil
}
