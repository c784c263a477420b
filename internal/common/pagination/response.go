package pagination

// Response wraps one page of API results with its metadata. The JSON
// endpoints that page their results (article cards, pending comments,
// subscribers) return this shape.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse builds a paginated response. A nil slice becomes an empty
// one so clients always receive a JSON array.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
