package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length limits
const (
	MaxPathLength     = 4096
	MaxFileNameLength = 255
	MaxContentSize    = 256 * 1024 * 1024 // 256MB - largest text accepted for a write

	// MaxPayloadSize bounds an encoded request carrying MaxContentSize of text.
	// JSON escaping of quotes and newlines can double the content.
	MaxPayloadSize = 2*MaxContentSize + 1<<20
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Null bytes truncate paths at the OS boundary
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidatePath validates a filesystem path argument
func ValidatePath(path, fieldName string) error {
	return ValidateString(path, fieldName, 1, MaxPathLength, true)
}

// ValidateFileName validates an optional file name suggestion. It may carry
// a directory, which dialogs open in.
func ValidateFileName(name, fieldName string) error {
	if err := ValidateString(name, fieldName, 0, MaxPathLength, false); err != nil {
		return err
	}
	base := name
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		base = name[i+1:]
	}
	if utf8.RuneCountInString(base) > MaxFileNameLength {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, MaxFileNameLength)
	}
	return nil
}

// ValidateContent validates text content for a write
func ValidateContent(content, fieldName string) error {
	if len(content) > MaxContentSize {
		return fmt.Errorf("%s must not exceed %d bytes", fieldName, MaxContentSize)
	}
	return nil
}
