package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a query is built for an empty SKU list.
// Callers short-circuit to an empty batch instead of issuing a request.
var ErrInvalidInput = errors.New("invalid input: no SKUs to query")

// TransportError is a network failure or a non-2xx upstream response.
type TransportError struct {
	// StatusCode is zero for network failures.
	StatusCode int
	// StatusText is the reason phrase, e.g. "Service Unavailable".
	StatusText string
	// Err is the underlying network error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API request failed: %v", e.Err)
	}
	return fmt.Sprintf("API returned status: %d %s", e.StatusCode, e.StatusText)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the upstream body does not have the expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse availability response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
