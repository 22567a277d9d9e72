package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a city label for safety and correctness.
// Labels end up verbatim in SVG text nodes, DOT source, and JSON payloads,
// so the rules are intentionally conservative:
//   - No empty labels
//   - No control characters or null bytes
//   - Maximum length of 64 characters
//
// Autogenerated labels ("City 1", "City 2", ...) always pass.
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "city label cannot be empty")
	}

	if len(label) > 64 {
		return New(ErrCodeInvalidInput, "city label too long (max 64 characters): %q", label)
	}

	for _, r := range label {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "city label contains control characters: %q", label)
		}
	}

	return nil
}

// ValidateOutputBase validates an output base path supplied by the user.
// The base is later extended with format suffixes and uniqueness counters,
// so it must be a plain path without surprises.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputBase(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}
