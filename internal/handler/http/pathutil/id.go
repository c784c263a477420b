package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses an {id} path wildcard value into a positive int64.
//
// Example:
//
//	id, err := pathutil.ParseID(r.PathValue("id"))
//	// "/admin/articles/42/edit" -> 42, nil
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
