package domain

import "math"

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

// Offset returns the zero-based row offset for a 1-indexed page.
// Offsets that would overflow saturate at math.MaxInt.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}
