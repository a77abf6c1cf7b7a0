package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ConfigExtensions lists the file extensions a sheet config may use.
var ConfigExtensions = []string{".toml", ".yaml", ".yml"}

// ValidateConfigPath validates a sheet config file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be one of ConfigExtensions
func ValidateConfigPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "config path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "config path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "config path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, ok := range ConfigExtensions {
		if ext == ok {
			return nil
		}
	}
	return New(ErrCodeUnsupported, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
}

// ValidateDimension checks that a geometric value is finite and not
// negative.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative: %v", name, v)
	}
	return nil
}

// ValidatePositive checks that a geometric value is finite and greater than
// zero.
func ValidatePositive(name string, v float64) error {
	if err := ValidateDimension(name, v); err != nil {
		return err
	}
	if v == 0 {
		return New(ErrCodeInvalidInput, "%s must be positive", name)
	}
	return nil
}

// ValidateSensitivity checks a snap sensitivity, which must lie in [0, 1).
func ValidateSensitivity(v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return New(ErrCodeInvalidInput, "sensitivity must be in [0, 1): %v", v)
	}
	return nil
}
