package levelpack

import "io"

// ArchiveProvider opens level archives for writing.
type ArchiveProvider interface {
	// CreateForUpdate opens the archive at path for writing, creating it if absent.
	// How an existing archive is treated is governed by mode.
	CreateForUpdate(path string, mode ExistingMode) (ArchiveWriter, error)
}

// ArchiveWriter assembles entries into an archive.
//
// Entries become visible at the destination only after Commit succeeds.
// Close must always be called; after a successful Commit it is a no-op,
// otherwise it discards everything written.
type ArchiveWriter interface {
	// CreateEntry starts a named entry and returns a writer for its content.
	// The returned writer is valid until the next CreateEntry, AddEntryFromFile or Commit call.
	CreateEntry(name string) (io.Writer, error)

	// AddEntryFromFile copies the file at sourcePath into the archive under name.
	AddEntryFromFile(sourcePath, name string) error

	// Commit finishes the archive and publishes it at its destination.
	Commit() (PublishedArchive, error)

	// Close releases all resources, discarding the archive if it was not committed.
	Close() error
}

// PublishedArchive describes an archive after Commit.
type PublishedArchive struct {
	Path    string   // Destination path
	Entries []string // All entry names in the archive, in archive order
	SHA256  string   // Hex digest of the archive file
	Size    int64    // Archive size in bytes
}
