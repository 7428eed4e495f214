package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tagurit/levelpack/internal/checksum"
	"github.com/tagurit/levelpack/internal/files/filesystem"
)

// ScannedFile describes one file found below the scan root.
type ScannedFile struct {
	Path       string    // Slash-separated path relative to the scan root, without "./"
	SizeBytes  int64     // File size in bytes
	SHA256     string    // Hex digest of the raw content
	ModifiedAt time.Time // Last modification time
}

// ScanResult holds the files of one scan, sorted by path.
type ScanResult struct {
	Root  string
	Files []ScannedFile
}

// Scanner discovers and digests files from a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new file scanner with the given checksum calculator.
// Uses OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// ScanDirectory recursively scans a directory and returns its files.
// Directories themselves are not reported.
func (s *Scanner) ScanDirectory(root string) (ScanResult, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []ScannedFile
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		if file.Info().IsDir() {
			return nil
		}

		scanned, err := s.processFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", file.RelativePath(), err)
		}

		files = append(files, scanned)
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return ScanResult{Root: root, Files: files}, nil
}

func (s *Scanner) processFile(file filesystem.File) (ScannedFile, error) {
	content, err := file.ReadContent()
	if err != nil {
		return ScannedFile{}, fmt.Errorf("failed to read file: %w", err)
	}

	info := file.Info()
	return ScannedFile{
		Path:       NormalizePath(file.RelativePath()),
		SizeBytes:  info.Size(),
		SHA256:     s.calculator.CalculateRaw(content),
		ModifiedAt: info.ModTime(),
	}, nil
}

// NormalizePath converts a relative path to the form used in scan results:
// forward slashes, no leading "./" or "/".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(filepath.ToSlash(p), "\\", "/")
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return strings.TrimPrefix(p, "/")
}
