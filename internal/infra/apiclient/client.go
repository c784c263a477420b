// Package apiclient implements the repository interfaces over the Fresh
// Motors backend REST API. All requests go through a shared circuit breaker
// and map backend responses onto domain sentinel errors, so usecases never
// see raw HTTP status codes.
package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/observability/metrics"
	"fresh-motors-web/internal/resilience/circuitbreaker"
)

const userAgent = "FreshMotorsWeb/1.0"

// maxErrorBodySize bounds how much of an error response is read for parsing.
const maxErrorBodySize = 64 * 1024

// Client is the shared HTTP core behind the per-resource clients.
// It owns the base URL, the circuit breaker and the error mapping.
// Safe for concurrent use.
type Client struct {
	base        string
	breaker     *circuitbreaker.HTTPCircuitBreaker
	timeout     time.Duration
	viewTimeout time.Duration
}

// New creates a backend API client from the loaded configuration.
func New(cfg *config.BackendConfig) *Client {
	httpClient := &http.Client{
		// 呼び出しごとのタイムアウトは do() のコンテキストで制御する
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}

	breakerCfg := circuitbreaker.Config{
		Name:             "backend-api",
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
		MinRequests:      cfg.CircuitBreaker.MinRequests,
	}

	return &Client{
		base:        strings.TrimSuffix(cfg.APIBase(), "/"),
		breaker:     circuitbreaker.NewHTTPCircuitBreakerWithConfig(httpClient, breakerCfg),
		timeout:     cfg.Timeout,
		viewTimeout: cfg.ViewTimeout,
	}
}

// listEnvelope is the paginated list shape the backend returns.
type listEnvelope[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// do executes one round trip against the backend and decodes the JSON
// response into out (which may be nil for endpoints without a body).
// The bearer token, if any, is taken from the context.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	return c.doWithTimeout(ctx, c.timeout, method, path, query, body, out)
}

func (c *Client) doWithTimeout(ctx context.Context, timeout time.Duration, method, path string, query url.Values, body interface{}, out interface{}) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.breaker.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(resourceLabel(path), method, 0, time.Since(start))
		return mapTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordBackendRequest(resourceLabel(path), method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		// ボディは読み捨てて接続を再利用させる
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// get is a shorthand for GET requests.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post is a shorthand for POST requests.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// patch is a shorthand for PATCH requests.
func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// put is a shorthand for PUT requests.
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// delete is a shorthand for DELETE requests.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Healthz pings the backend health endpoint. The readiness probe uses it
// to detect a dead or unreachable backend.
func (c *Client) Healthz(ctx context.Context) error {
	return c.get(ctx, "/healthz/", nil, nil)
}

// mapTransportError converts connection-level failures into domain errors.
// An open circuit and a dead backend look the same to callers.
func mapTransportError(err error) error {
	if circuitbreaker.IsCircuitOpen(err) {
		return fmt.Errorf("%w: circuit open", entity.ErrBackendUnavailable)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", entity.ErrBackendUnavailable)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", entity.ErrBackendUnavailable, err)
}

// apiErrorBody is the error shape of the backend: either a detail message
// or a per-field validation map.
type apiErrorBody struct {
	Detail string `json:"detail"`
}

// parseAPIError maps an error response onto a domain sentinel, carrying
// field-level validation messages when the backend provides them.
func parseAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return entity.ErrNotFound
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", entity.ErrUnauthorized, errorDetail(raw))
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", entity.ErrForbidden, errorDetail(raw))
	case http.StatusTooManyRequests:
		return entity.ErrRateLimited
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if fields := fieldErrorsFrom(raw); len(fields) > 0 {
			return fields
		}
		return fmt.Errorf("%w: %s", entity.ErrValidationFailed, errorDetail(raw))
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: backend returned %d", entity.ErrBackendUnavailable, resp.StatusCode)
	}
	return fmt.Errorf("backend returned unexpected status %d: %s", resp.StatusCode, errorDetail(raw))
}

// errorDetail extracts a human-readable message from an error body,
// falling back to a generic phrase for unparseable payloads.
func errorDetail(raw []byte) string {
	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	if len(raw) == 0 {
		return "no error detail"
	}
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	return trimmed
}

// fieldErrorsFrom decodes a {"field": ["msg", ...]} validation payload.
// Returns nil when the body has another shape.
func fieldErrorsFrom(raw []byte) entity.FieldErrors {
	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	out := entity.FieldErrors{}
	for field, messages := range fields {
		if field == "detail" || len(messages) == 0 {
			continue
		}
		out[field] = messages
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// resourceLabel derives the metrics resource label from a request path,
// e.g. "/articles/42/comments/" -> "articles".
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		return trimmed[:idx]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}

type tokenContextKey struct{}

// WithToken returns a context carrying the backend bearer token. The session
// middleware attaches it for authenticated admin requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext retrieves the bearer token, or "" when none is attached.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey{}).(string); ok {
		return token
	}
	return ""
}
