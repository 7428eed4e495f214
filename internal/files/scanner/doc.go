// Package scanner discovers files in a directory tree and digests their content.
//
// The scanner package is responsible for:
//   - Recursively discovering files below a root directory
//   - Normalizing their paths to slash-separated paths relative to the root
//   - Recording size, modification time and SHA-256 of each file
//
// It is used to index the base game's asset directory so level compilation can
// tell shipped assets from the ones a level has to bring along.
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
