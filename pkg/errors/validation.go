package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputBytes bounds the size of a timeline text accepted for layout.
const MaxInputBytes = 1 << 20

// ValidateInput checks a timeline text before it is parsed.
//
// The rules are intentionally conservative:
//   - Not empty or whitespace only
//   - At most MaxInputBytes
//   - Valid UTF-8
//   - No null bytes
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeEmptyInput, "input cannot be empty")
	}
	if len(text) > MaxInputBytes {
		return New(ErrCodeInvalidInput, "input too large (max %d bytes)", MaxInputBytes)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "input is not valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "input contains null bytes")
	}
	return nil
}

// ValidateLabel validates a free-text label such as a diagram title.
// Empty labels are allowed.
func ValidateLabel(label string) error {
	const maxLabelLength = 200
	if utf8.RuneCountInString(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
