package utils

import "strconv"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination validates raw query values, applying defaults for empty input.
func ParsePagination(pageStr, pageSizeStr string) (int, int, error) {
	page, pageSize := DefaultPage, DefaultPageSize

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, ErrInvalidPage
		}
		page = p
	}

	if pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps < 1 || ps > MaxPageSize {
			return 0, 0, ErrInvalidPageSize
		}
		pageSize = ps
	}

	return page, pageSize, nil
}
