package preview

import "errors"

// Sentinel errors for preview fetching. The generate form shows these
// inline next to the URL field; none of them should bubble up as a 500.
var (
	// ErrInvalidURL indicates a URL that cannot be previewed: bad syntax,
	// non-http scheme or an empty hostname.
	ErrInvalidURL = errors.New("invalid source URL")

	// ErrPrivateIP indicates the hostname resolves into the private
	// network. Fetching it from the server would open an SSRF hole.
	ErrPrivateIP = errors.New("source URL resolves to a private address")

	// ErrTooManyRedirects indicates the redirect chain exceeded the
	// configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("source page too large")

	// ErrTimeout indicates the source did not answer in time.
	ErrTimeout = errors.New("source request timed out")

	// ErrUnreadable indicates the page yielded no extractable article
	// content.
	ErrUnreadable = errors.New("no readable content found")
)
