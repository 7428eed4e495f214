package levelpack

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Optional holds a value that is either absent or present.
// Unlike a pointer or a zero value, Optional keeps "absent" distinct from
// "present but empty", which the metadata rules depend on.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr converts a nil-able pointer into an Optional.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the held value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.present {
		return nil
	}
	v := o.value
	return &v
}

// String renders the held value, or "<absent>".
func (o Optional[T]) String() string {
	if !o.present {
		return "<absent>"
	}
	return fmt.Sprint(o.value)
}

// LevelMetaData describes one level's packaging metadata.
// A record is treated as immutable input: validation and compilation never modify it.
type LevelMetaData struct {
	// Name is the level's display name. Required, must not be blank.
	Name string

	// Description is optional. When present it must not be blank; use None for "no description".
	Description Optional[string]

	// Author is the level author's name. Required, must not be blank.
	Author string

	// ThumbnailPath optionally points at a local image file copied into the archive.
	ThumbnailPath Optional[string]

	// CreationTime must not be in the future.
	CreationTime time.Time

	// LastUpdated must not be in the future and not before CreationTime.
	LastUpdated time.Time

	// Version must be at least 1.
	Version int
}

// ArchiveBaseName derives the archive file name for the level: the name with
// every whitespace character replaced by an underscore, plus the ".tab"
// extension. The name is not trimmed, so " Cave" and "Cave" name different
// archives.
func (m *LevelMetaData) ArchiveBaseName() string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, m.Name)
	return name + "." + ArchiveExtension
}

// ExistingMode selects how compilation treats an archive that already exists at the destination.
type ExistingMode string

const (
	// ExistingUpdate keeps entries of the existing archive that this compile does not rewrite.
	// Rewritten entries are replaced, never duplicated.
	ExistingUpdate ExistingMode = "update"

	// ExistingOverwrite discards the existing archive.
	ExistingOverwrite ExistingMode = "overwrite"

	// ExistingFail refuses to touch an existing archive.
	ExistingFail ExistingMode = "fail"
)

// ExistingModes returns all supported modes, in documentation order.
func ExistingModes() []ExistingMode {
	return []ExistingMode{ExistingUpdate, ExistingOverwrite, ExistingFail}
}

// ParseExistingMode converts a string to an ExistingMode.
// The empty string selects ExistingUpdate.
func ParseExistingMode(s string) (ExistingMode, error) {
	switch ExistingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExistingUpdate:
		return ExistingUpdate, nil
	case ExistingOverwrite:
		return ExistingOverwrite, nil
	case ExistingFail:
		return ExistingFail, nil
	}
	return "", fmt.Errorf("unknown existing-archive mode %q (expected update, overwrite or fail): %w", s, ErrInvalidConfig)
}

// Artifact describes a published level archive.
type Artifact struct {
	// Path is the location of the published archive.
	Path string

	// LevelID is a deterministic identifier derived from the archive name.
	LevelID string

	// Entries lists the entry names written by this compile, in write order.
	Entries []string

	// SHA256 is the hex-encoded digest of the published archive.
	SHA256 string

	// Size is the size of the published archive in bytes.
	Size int64
}
