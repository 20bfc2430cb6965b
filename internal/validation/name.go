package validation

import (
	"strings"
)

// ValidateName validates a display name (food name, first name)
func ValidateName(field, name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return invalid(field, "is required")
	}

	if len(trimmed) > 100 {
		return invalid(field, "is too long (max 100 characters)")
	}

	return nil
}
