// Package article provides the use cases behind article pages and the
// admin article editor. Read paths enrich backend documents for display
// (reading time, media URL rewriting, excerpts); write paths validate
// editor input before it reaches the backend. Entity sentinel errors
// (entity.ErrNotFound, entity.ErrBackendUnavailable, ...) pass through
// unchanged so handlers can switch on errors.Is.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrInvalidSlug indicates an empty slug argument. Slugs come from
	// the URL path; an empty one means a routing bug, not a user error.
	ErrInvalidSlug = errors.New("invalid article slug")

	// ErrInvalidArticleID indicates a non-positive article ID.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
