// Package engagement exposes the /api/ui JSON endpoints the public page
// scripts call: comment, rate, favorite and subscribe, plus the fresh
// engagement counts an article page polls after rendering from cache.
package engagement

import (
	"encoding/json"
	"errors"
	"net/http"

	"fresh-motors-web/internal/handler/http/respond"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

// maxBodyBytes caps one JSON submission. The longest legal comment stays
// well under this even in four-byte runes.
const maxBodyBytes = 16 << 10

// Register mounts the engagement endpoints on mux. The caller puts the
// IP rate limiter in front of this subtree; the visitor cookie
// middleware sits in the global chain.
func Register(mux *http.ServeMux, svc *engUC.Service) {
	mux.Handle("POST /api/ui/comments", CommentHandler{svc})
	mux.Handle("POST /api/ui/ratings", RatingHandler{svc})
	mux.Handle("POST /api/ui/favorites/toggle", ToggleFavoriteHandler{svc})
	mux.Handle("GET  /api/ui/favorites", ListFavoritesHandler{svc})
	mux.Handle("POST /api/ui/subscribe", SubscribeHandler{svc})
	mux.Handle("GET  /api/ui/articles/{slug}/engagement", CountsHandler{svc})
}

// decodeBody reads one JSON request body under a tight size cap and
// writes the error response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return err
		}
		respond.Error(w, http.StatusBadRequest, "invalid json body")
		return err
	}
	return nil
}

// outcome buckets a submission error for the engagement metric.
func outcome(err error) string {
	if respond.StatusForError(err) < http.StatusInternalServerError {
		return "rejected"
	}
	return "error"
}
