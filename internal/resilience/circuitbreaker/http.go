// Package circuitbreaker provides circuit breaker implementations for HTTP clients.
// This file implements an HTTP-specific wrapper that protects calls to the content
// backend from cascading failures.
package circuitbreaker

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker"
)

// errUpstreamStatus marks 5xx responses as breaker failures while still
// handing the response back to the caller for status mapping.
var errUpstreamStatus = errors.New("upstream returned server error status")

// HTTPCircuitBreaker wraps an http.Client with circuit breaker protection.
// Transport errors and 5xx responses count as failures; 4xx responses are
// treated as successful calls because the upstream did answer.
type HTTPCircuitBreaker struct {
	cb     *CircuitBreaker
	client *http.Client
}

// NewHTTPCircuitBreaker creates an HTTP circuit breaker for backend calls.
func NewHTTPCircuitBreaker(client *http.Client) *HTTPCircuitBreaker {
	return NewHTTPCircuitBreakerWithConfig(client, BackendAPIConfig())
}

// NewHTTPCircuitBreakerWithConfig creates an HTTP circuit breaker with custom configuration.
func NewHTTPCircuitBreakerWithConfig(client *http.Client, cfg Config) *HTTPCircuitBreaker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPCircuitBreaker{
		cb:     New(cfg),
		client: client,
	}
}

// Do executes the request with circuit breaker protection.
// If the circuit is open, it returns gobreaker.ErrOpenState immediately
// without making the request. A 5xx response trips the failure counter but
// is still returned so the caller can read the body.
func (hcb *HTTPCircuitBreaker) Do(req *http.Request) (*http.Response, error) {
	result, err := hcb.cb.Execute(func() (interface{}, error) {
		resp, err := hcb.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errUpstreamStatus
		}
		return resp, nil
	})

	if errors.Is(err, errUpstreamStatus) {
		return result.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}

	return result.(*http.Response), nil
}

// IsCircuitOpen reports whether err signals a rejected call from an open or
// saturated half-open circuit.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// State returns the current state of the circuit breaker.
func (hcb *HTTPCircuitBreaker) State() gobreaker.State {
	return hcb.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (hcb *HTTPCircuitBreaker) IsOpen() bool {
	return hcb.cb.IsOpen()
}

// Client returns the underlying HTTP client.
// This should only be used for calls that don't need circuit breaker protection.
func (hcb *HTTPCircuitBreaker) Client() *http.Client {
	return hcb.client
}
