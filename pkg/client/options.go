package client

import (
	"net/http"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests. The default is a
// client without a timeout; cancellation comes from the request context.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRoutes overrides the endpoint table, usually with one read from the
// API contract.
func WithRoutes(routes Routes) Option {
	return func(c *Client) {
		c.routes = routes
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDGenerator replaces the X-Request-ID generator. Useful in tests.
func WithRequestIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}
