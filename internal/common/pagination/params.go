package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params is the parsed pagination input of one request.
type Params struct {
	Page  int // 1-based page number
	Limit int // items per page
}

// ParseQueryParams parses page and limit from an API request. Unlike
// ParsePage it rejects bad input, so API callers learn about their
// mistakes instead of silently landing on page one.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// ParsePage parses ?page= for an HTML page. Bad or missing input falls
// back to page one; a reader who edits the address bar gets the first
// page, never an error page. The limit always comes from config because
// public pages have a fixed grid size.
func ParsePage(r *http.Request, config Config) Params {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			params.Page = page
		}
	}

	return params
}
