package metadata

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tagurit/levelpack/pkg/levelpack"
)

// ManifestError represents a structured error with context and helpful hints.
// It includes file path, optional line number, and an actionable suggestion.
type ManifestError struct {
	FilePath string // Path to the manifest with the error
	Line     int    // Line number (0 if unknown)
	Field    string // Field name (e.g., "created") if applicable
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
	Err      error  // Underlying decoder cause, if any
}

// Error implements the error interface with rich formatting.
func (e *ManifestError) Error() string {
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.FilePath, e.Line)
	}

	msg := fmt.Sprintf("manifest error in %s: %s", location, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("manifest error in %s [field: %s]: %s", location, e.Field, e.Message)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

// Unwrap reports levelpack.ErrInvalidConfig together with the decoder cause.
func (e *ManifestError) Unwrap() []error {
	if e.Err == nil {
		return []error{levelpack.ErrInvalidConfig}
	}
	return []error{levelpack.ErrInvalidConfig, e.Err}
}

const manifestFormatHint = "Expected format:\n" +
	"  name: Forest Ruins\n" +
	"  author: Jane\n" +
	"  created: 2026-01-02T15:04:05Z\n" +
	"  updated: 2026-01-02T15:04:05Z\n" +
	"  version: 1"

var lineNumberPattern = regexp.MustCompile(`line (\d+)`)

// lineFromMessage extracts the first "line N" reference from a decoder message.
func lineFromMessage(msg string) int {
	m := lineNumberPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
