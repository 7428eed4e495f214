// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS, in-memory, fs.FS)
//   - scanner: File discovery and content digests
//
// # Usage
//
//	import (
//	    "github.com/tagurit/levelpack/internal/files/filesystem"
//	    "github.com/tagurit/levelpack/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScanner(checksum.New())
//	result, err := fileScanner.ScanDirectory("./game/assets")
package files
