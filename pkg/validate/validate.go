// Package validate holds the input checks shared by the usecases.
package validate

import (
	"strings"

	"vidtube/pkg/apperror"

	"github.com/google/uuid"
)

// ID checks that value is a well-formed identifier and returns its canonical
// lowercase hyphenated form. Callers compare and store only the returned value.
func ID(field, value string) (string, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", apperror.InvalidArgument("invalid %s", field)
	}
	return id.String(), nil
}

// IDs canonicalizes every identifier, stopping at the first malformed one.
func IDs(field string, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		id, err := ID(field, v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// Text trims value and rejects an empty result.
func Text(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperror.InvalidArgument("%s is required", field)
	}
	return trimmed, nil
}

// Unique drops repeated values keeping the first occurrence.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
