package memory

import (
	"math"
	"strings"
)

// DefaultPageSize is the list page size when none is requested.
const DefaultPageSize = 6

// Filter keeps the items whose searchable fields contain the term,
// case-insensitively. An empty or blank term keeps everything.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Paginate returns the requested page window along with the clamped
// page actually served. Pages are 1-based; out-of-range requests are
// clamped into the valid range rather than returned empty.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := int(math.Ceil(float64(len(items)) / float64(pageSize)))
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, page
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page
}
