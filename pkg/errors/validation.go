package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateEntityID validates a module, feature or connection identifier.
// Identifiers come from an external store and end up in node IDs, cache keys
// and URLs, so the rules are conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No whitespace at either end
//   - Maximum length of 256 characters
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "id has leading or trailing whitespace: %q", id)
	}

	return nil
}

// ValidateSearch validates free-text search input.
// Empty search is valid and means "no filter".
func ValidateSearch(q string) error {
	const maxSearchLength = 200
	if len(q) > maxSearchLength {
		return New(ErrCodeInvalidInput, "search too long (max %d characters)", maxSearchLength)
	}
	for _, r := range q {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidInput, "search contains invalid characters")
		}
	}
	return nil
}

// fileNameUnsafe matches every run of characters not allowed in export file names.
var fileNameUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFileNameHint turns a user-supplied name hint into a safe base name
// for snapshot files. It never fails: unusable hints collapse to "graph".
//
// Rules:
//   - Path components are stripped (only the last segment is kept)
//   - Runs of unsafe characters become a single dash
//   - Leading dots and dashes are trimmed (no hidden files)
//   - The result is capped at 64 characters
func SanitizeFileNameHint(hint string) string {
	hint = strings.ReplaceAll(hint, "\\", "/")
	if i := strings.LastIndex(hint, "/"); i >= 0 {
		hint = hint[i+1:]
	}
	hint = fileNameUnsafe.ReplaceAllString(hint, "-")
	hint = strings.TrimLeft(hint, ".-")
	hint = strings.TrimRight(hint, "-")
	if len(hint) > 64 {
		hint = hint[:64]
	}
	if hint == "" {
		return "graph"
	}
	return hint
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a scheme usable by the data sources (mongodb or
// mongodb+srv) or the cache (redis, rediss).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, scheme := range []string{"mongodb://", "mongodb+srv://", "redis://", "rediss://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use mongodb, mongodb+srv, redis or rediss scheme")
}
