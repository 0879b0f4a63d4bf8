package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/customer"
)

// Client talks to the customer REST API. Each method issues exactly one
// request and returns once the response has been read.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	routes     Routes
	logger     *zap.Logger
	requestID  func() string
}

// ServiceInfo is returned by the API root.
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}

// New constructs a Client for the API rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		routes:     DefaultRoutes(),
		logger:     zap.NewNop(),
		requestID:  uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Create posts a new customer and returns the stored resource.
func (c *Client) Create(ctx context.Context, payload customer.Payload) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodPost, c.routes.Collection, "", payload, &out)
	return out, err
}

// Update replaces the customer addressed by id.
func (c *Client) Update(ctx context.Context, id customer.ID, payload customer.Payload) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodPut, expand(c.routes.Resource, id), "", payload, &out)
	return out, err
}

// Retrieve reads the customer addressed by id.
func (c *Client) Retrieve(ctx context.Context, id customer.ID) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodGet, expand(c.routes.Resource, id), "", nil, &out)
	return out, err
}

// Delete removes the customer addressed by id. Response bodies are discarded.
func (c *Client) Delete(ctx context.Context, id customer.ID) error {
	return c.do(ctx, http.MethodDelete, expand(c.routes.Resource, id), "", nil, nil)
}

// Search lists customers. rawQuery is written into the request URI verbatim.
func (c *Client) Search(ctx context.Context, rawQuery string) ([]customer.Customer, error) {
	var out []customer.Customer
	if err := c.do(ctx, http.MethodGet, c.routes.Collection, rawQuery, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []customer.Customer{}
	}
	return out, nil
}

// Suspend marks the customer addressed by id as suspended.
func (c *Client) Suspend(ctx context.Context, id customer.ID) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodPut, expand(c.routes.Suspend, id), "", nil, &out)
	return out, err
}

// Info reads the service description exposed at the API root.
func (c *Client) Info(ctx context.Context) (ServiceInfo, error) {
	var out ServiceInfo
	err := c.do(ctx, http.MethodGet, c.routes.Info, "", nil, &out)
	return out, err
}

func (c *Client) endpoint(path, rawQuery string) *url.URL {
	u := *c.baseURL
	escaped := strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = escaped
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
	} else {
		u.Path = escaped
		u.RawPath = ""
	}
	u.RawQuery = rawQuery
	u.Fragment = ""
	return &u
}

func (c *Client) do(ctx context.Context, method, path, rawQuery string, body any, out any) error {
	if ctx == nil {
		return errors.New("client: context is required")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String(), reader)
	if err != nil {
		return fmt.Errorf("client: request: %w", err)
	}
	// Assigned after construction so raw queries are never re-parsed.
	req.URL = c.endpoint(path, rawQuery)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := c.requestID()
	req.Header.Set("X-Request-ID", requestID)

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", req.URL.EscapedPath()),
		zap.String("query", rawQuery),
		zap.String("request_id", requestID),
	}
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("customer api request failed", append(fields, zap.Error(err))...)
		return fmt.Errorf("client: %s %s: %w", method, req.URL.EscapedPath(), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("customer api response", append(fields,
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)...)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("client: read error body: %w", readErr)
		}
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
