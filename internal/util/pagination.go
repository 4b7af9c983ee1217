package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParseIntDefault parses query string numbers, falling back to def for
// anything missing or malformed.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Calculate turns a 1-based page and a requested size into an offset and a
// clamped limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}
