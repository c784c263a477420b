package pagination

// Metadata describes one page of results. JSON API responses embed it
// verbatim; templates use the navigation helpers to render the pager.
type Metadata struct {
	Total      int64 `json:"total"`       // total items across all pages
	Page       int   `json:"page"`        // current page, 1-based
	Limit      int   `json:"limit"`       // items per page
	TotalPages int   `json:"total_pages"` // derived page count
}

// HasPrev reports whether a previous page exists.
func (m Metadata) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a next page exists.
func (m Metadata) HasNext() bool {
	return m.Page < m.TotalPages
}

// PrevPage returns the previous page number, clamped to the first page.
func (m Metadata) PrevPage() int {
	if m.Page <= 1 {
		return 1
	}
	return m.Page - 1
}

// NextPage returns the next page number, clamped to the last page.
func (m Metadata) NextPage() int {
	if m.Page >= m.TotalPages {
		return m.TotalPages
	}
	return m.Page + 1
}

// pagerWindow is how many numbered links the pager renders at most.
const pagerWindow = 5

// PageNumbers returns the page numbers the pager shows: a window of up
// to five pages centered on the current one, shifted at either edge so
// the window stays full while pages exist to fill it.
func (m Metadata) PageNumbers() []int {
	if m.TotalPages <= 1 {
		return []int{1}
	}

	start := m.Page - pagerWindow/2
	if start < 1 {
		start = 1
	}
	end := start + pagerWindow - 1
	if end > m.TotalPages {
		end = m.TotalPages
		if start = end - pagerWindow + 1; start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
