package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxWindow bounds offset+limit. It matches Elasticsearch's default
	// index.max_result_window.
	MaxWindow = 10000
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate clamps page and size and returns the row window. The returned
// page is the one actually served.
func Calculate(page, size int) (p, offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if last := MaxWindow / size; page > last {
		page = last
	}
	return page, (page - 1) * size, size
}

func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
