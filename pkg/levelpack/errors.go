package levelpack

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := compiler.CompileLevel(meta)
//	if errors.Is(err, levelpack.ErrValidation) {
//	    // Ask the user to fix the metadata
//	}
var (
	// ErrValidation indicates the level metadata violates a validation rule.
	ErrValidation = errors.New("invalid level metadata")

	// ErrArchiveIO indicates the destination archive or a source file could not be read or written.
	ErrArchiveIO = errors.New("archive I/O failed")

	// ErrArchiveExists indicates the destination archive exists and the existing-archive mode forbids touching it.
	ErrArchiveExists = errors.New("archive already exists")

	// ErrInvalidArchiveName indicates the level name cannot be turned into a safe archive file name.
	ErrInvalidArchiveName = errors.New("invalid archive name")

	// ErrNotImplemented indicates a packaging step is not yet implemented.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidConfig indicates the provided configuration or manifest is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrManifestNotFound indicates no level manifest was found at the given location.
	ErrManifestNotFound = errors.New("level manifest not found")

	// ErrOverwriteDenied indicates the user denied replacing an existing archive.
	ErrOverwriteDenied = errors.New("overwrite denied")
)

// ValidationError reports the first metadata rule a record violated.
type ValidationError struct {
	Rule    string // Rule identifier (e.g., "name", "thumbnail.size")
	Message string // Human-readable description of the violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
}

// Is reports ErrValidation so callers can match without a type assertion.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrManifestNotFound), errors.Is(err, ErrInvalidArchiveName):
		return ExitConfigError
	case errors.Is(err, ErrOverwriteDenied):
		return ExitOverwriteDenied
	case errors.Is(err, ErrArchiveExists):
		return ExitArchiveExists
	case errors.Is(err, ErrNotImplemented):
		return ExitNotImplemented
	case errors.Is(err, ErrArchiveIO):
		return ExitArchiveError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "accepts ") ||
		strings.Contains(errStr, "requires at least") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "missing required argument") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
