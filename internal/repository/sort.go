package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSortField = errors.New("unknown sort field")
	ErrEmptyUpdate      = errors.New("no fields to update")
	ErrUnknownColumn    = errors.New("unknown column")
)

// ParseSort turns a "-field"/"field" token into an ORDER BY clause. The field
// must resolve through the given allow-list; client input is never interpolated
// into the query directly.
func ParseSort(sort string, allowed map[string]string, fallback string) (string, error) {
	if sort == "" {
		sort = fallback
	}

	direction := "ASC"
	field := sort
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(sort, "-")
	}

	column, ok := allowed[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}

	return fmt.Sprintf("%s %s", column, direction), nil
}

// filterUpdateColumns keeps only recognized json field names, remapped to their
// real column names. Unknown keys fail instead of being dropped silently.
func filterUpdateColumns(fields map[string]any, allowed map[string]string) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	out := make(map[string]any, len(fields))
	for key, value := range fields {
		column, ok := allowed[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
		}
		out[column] = value
	}

	return out, nil
}
