package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateIconName validates an icon name for safety and correctness.
// Names are interpolated into fetch URLs and cache file paths, so anything
// that could escape the cache directory or smuggle characters into a URL is
// rejected.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No path separators
//   - Maximum length of 256 characters
func ValidateIconName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeConfig, "icon name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeConfig, "icon name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeConfig, "icon name contains invalid control characters")
		}
	}

	// Path traversal and separator patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeConfig, "icon name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateBaseURL validates an icon source base URL from settings or flags.
// Only http and https schemes are allowed.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return New(ErrCodeConfig, "base URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeConfig, err, "invalid base URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeConfig, "base URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return New(ErrCodeConfig, "base URL %q has no host", raw)
	}

	return nil
}
