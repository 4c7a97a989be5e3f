package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateUnitCount rejects unit counts below one.
func ValidateUnitCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidArgument, "unit count must be at least 1, got %d", n)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values.
// The name is used in the error message.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeNumericDomain, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateRange checks that v is finite and lies within [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidArgument, "%s must be between %g and %g, got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateLabel validates an atom label for use in a whitespace-separated
// coordinate record. Labels must be non-empty, at most 16 characters, and
// contain no whitespace or control characters.
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidArgument, "label cannot be empty")
	}
	if len(label) > 16 {
		return New(ErrCodeInvalidArgument, "label too long (max 16 characters)")
	}
	for _, r := range label {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "label contains whitespace or control characters: %q", label)
		}
	}
	return nil
}

// ValidateComment validates the free-text comment line. It must fit on a
// single line.
func ValidateComment(comment string) error {
	if strings.ContainsAny(comment, "\r\n") {
		return New(ErrCodeInvalidArgument, "comment must be a single line")
	}
	return nil
}

// ValidateFilename validates a download filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	if len(filename) > 255 {
		return New(ErrCodeInvalidPath, "filename too long (max 255 characters)")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	for _, r := range filename {
		if unicode.IsControl(r) || r == '"' {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	return nil
}
