package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// maxEntityIDLength bounds entity identifiers; longer ids are almost always
// a mis-mapped payload column.
const maxEntityIDLength = 256

// ValidateEntityID validates an entity identifier taken from an input record.
//
// The rules:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "entity id cannot be empty")
	}

	if len(id) > maxEntityIDLength {
		return New(ErrCodeInvalidInput, "entity id too long (max %d characters)", maxEntityIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entity id contains invalid control characters")
		}
	}

	return nil
}

// datasetExtensions lists the file extensions the dataset loader understands.
var datasetExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".csv":  true,
}

// ValidateDatasetPath validates an event file path before it is opened.
// It checks for null bytes and a supported extension.
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "dataset path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "dataset path contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !datasetExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported dataset extension %q (must be .json, .yaml, .yml or .csv)", ext)
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a palette color.
// Only hex notation is accepted so colors survive SVG attribute escaping untouched.
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidStyle, "invalid color %q (must be #rgb or #rrggbb)", color)
	}
	return nil
}
