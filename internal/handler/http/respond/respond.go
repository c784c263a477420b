// Package respond provides utilities for sending HTTP responses in JSON format.
// It maps domain errors onto status codes and sanitizes internal details so
// backend failures never leak credentials or tokens to page scripts.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fresh-motors-web/internal/domain/entity"
)

// ErrorResponse is the JSON error envelope of the UI API.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Field  string              `json:"field,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and message.
// Used when the handler already knows the status, e.g. a malformed body.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, ErrorResponse{Error: message})
}

// DomainError maps a domain error onto the matching HTTP status and a
// user-safe message. Validation errors pass through with their field;
// everything unrecognized becomes a logged 500 with a generic body.
func DomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var verr *entity.ValidationError
	var fieldErrs entity.FieldErrors
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &fieldErrs):
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fieldErrs})
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrValidationFailed):
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	case errors.Is(err, entity.ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, entity.ErrForbidden):
		JSON(w, http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, entity.ErrNotFound):
		JSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, entity.ErrRateLimited):
		JSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
	case errors.Is(err, entity.ErrBackendUnavailable):
		// バックエンド断は想定内の劣化なのでErrorではなくWarn
		slog.Default().Warn("backend unavailable",
			slog.String("error", SanitizeError(err)))
		JSON(w, http.StatusBadGateway, ErrorResponse{Error: "service temporarily unavailable"})
	default:
		slog.Default().Error("internal server error",
			slog.String("error", SanitizeError(err)))
		JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// StatusForError returns the HTTP status DomainError would answer with.
// HTML handlers use it to pick an error page without writing JSON.
func StatusForError(err error) int {
	var verr *entity.ValidationError
	var fieldErrs entity.FieldErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr), errors.As(err, &fieldErrs),
		errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, entity.ErrBackendUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
