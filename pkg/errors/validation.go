package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a document path given on the command line or in a
// preview request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateImageURL validates the URL of an image annotation.
// Remote images must use http or https; anything without a scheme is
// treated as a relative file path and must not escape its directory.
func ValidateImageURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "image URL cannot be empty")
	}

	if i := strings.Index(rawURL, "://"); i >= 0 {
		scheme := rawURL[:i]
		if scheme != "http" && scheme != "https" {
			return New(ErrCodeInvalidInput, "image URL must use http or https scheme, got %q", scheme)
		}
		return nil
	}
	if strings.HasPrefix(rawURL, "data:") {
		return nil
	}
	if strings.Contains(rawURL, "..") {
		return New(ErrCodeInvalidPath, "image path cannot contain path traversal sequences (..)")
	}
	return ValidatePath(rawURL)
}
