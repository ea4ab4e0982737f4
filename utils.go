package portalgun

import (
	"slices"
	"strings"
)

func IsPrimeDimension(dimension string) bool {
	return dimension == RickPrimeDimension
}

func IsRegularDimension(dimension string) bool {
	return slices.Contains(RegularDimensions, dimension)
}

func IsCharacterStatus(status string) bool {
	return slices.Contains(CharacterStatuses, status)
}

// NormalizeStatus trims and lower-cases a status the way it is stored.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsHTTPURL reports whether s is an absolute http or https URL.
func IsHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func Ptr[T any](v T) *T {
	return &v
}
