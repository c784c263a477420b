package pagination

// CalculateOffset converts a 1-based page number into the offset query
// parameter the backend expects: offset = (page - 1) * limit.
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CalculateTotalPages derives the page count from the backend's total,
// using ceiling division. An empty result set still has one page so the
// pager always renders.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
