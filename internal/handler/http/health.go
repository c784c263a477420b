// Package http provides the HTTP middleware and operational endpoints of
// the web frontend: request logging, panic recovery, metrics, timeouts,
// input limits and the health probes.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// BackendChecker pings the backend API. apiclient.Client implements it.
type BackendChecker interface {
	Healthz(ctx context.Context) error
}

// CacheEntry is the readiness view of one shared cache entry.
type CacheEntry interface {
	Name() string
	Warm() bool
}

// ReadyHandler answers the readiness probe. It checks backend API
// reachability and the warmth of the shared cache entries.
//
// A dead backend with warm caches still serves pages (stale data beats
// no data on a news site), so readiness only fails when the backend is
// down AND nothing is cached: the instance then has nothing to serve.
type ReadyHandler struct {
	Backend BackendChecker
	Caches  []CacheEntry
	Version string
}

// ServeHTTP performs readiness checks and returns the detailed status.
// Returns 200 OK when the instance can serve traffic, 503 otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)

	backendHealthy := false
	if h.Backend != nil {
		if err := h.Backend.Healthz(ctx); err != nil {
			checks["backend"] = CheckStatus{
				Status:  "unhealthy",
				Message: "backend API unreachable",
			}
		} else {
			backendHealthy = true
			checks["backend"] = CheckStatus{Status: "healthy"}
		}
	} else {
		checks["backend"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
	}

	warmCount := 0
	if len(h.Caches) > 0 {
		details := make(map[string]interface{}, len(h.Caches))
		for _, entry := range h.Caches {
			warm := entry.Warm()
			details[entry.Name()] = warm
			if warm {
				warmCount++
			}
		}
		cacheStatus := "healthy"
		if warmCount < len(h.Caches) {
			// コールドなエントリは次のcron更新で埋まる
			cacheStatus = "degraded"
		}
		checks["cache"] = CheckStatus{
			Status:  cacheStatus,
			Details: details,
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	switch {
	case !backendHealthy && warmCount == 0:
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	case !backendHealthy || warmCount < len(h.Caches):
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("ready: failed to encode response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
