// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the read-side file operations levelpack needs (existence
// and size checks for thumbnails, streaming source files into archives, walking
// asset trees), enabling testability through in-memory implementations while
// maintaining compatibility with the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Stat, read, open-for-read and directory access
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file with metadata and content
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - EmbedFileSystem: Read-only provider over an fs.FS (embedded templates)
package filesystem
