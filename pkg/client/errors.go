package client

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	// Message is the server's "message" field, or the status text when the
	// body does not carry one.
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: status %d: %s", e.StatusCode, e.Message)
}

// NotFound reports a 404 response.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       body,
	}
	var parsed errorBody
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &parsed) == nil {
		apiErr.Message = strings.TrimSpace(parsed.Message)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// Message returns the text to show a user for err: the server message for
// API errors, the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
