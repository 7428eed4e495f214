package compiler

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

type mockAssetResolver struct {
	assets []levelpack.Asset
	err    error

	calledWith string
}

func (m *mockAssetResolver) ResolveAssets(contentPath string) ([]levelpack.Asset, error) {
	m.calledWith = contentPath
	return m.assets, m.err
}

// recordingLogger keeps every message by level.
type recordingLogger struct {
	mu      sync.Mutex
	verbose []string
	info    []string
	errors  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// unreadableFS passes Stat through but refuses to open files, so a thumbnail
// validates and then fails to copy.
type unreadableFS struct {
	*filesystem.MemoryFileSystem
}

func (f unreadableFS) OpenFile(path string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("open %s: %w", path, errors.New("device not ready"))
}

// recordingProvider logs every archive operation instead of writing a file.
type recordingProvider struct {
	calls     []string
	createErr error
	commitErr error
}

func (p *recordingProvider) CreateForUpdate(path string, mode levelpack.ExistingMode) (levelpack.ArchiveWriter, error) {
	p.calls = append(p.calls, fmt.Sprintf("open %s %s", path, mode))
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &recordingWriter{provider: p, path: path}, nil
}

type recordingWriter struct {
	provider *recordingProvider
	path     string
	entries  []string
}

func (w *recordingWriter) CreateEntry(name string) (io.Writer, error) {
	w.provider.calls = append(w.provider.calls, "entry "+name)
	w.entries = append(w.entries, name)
	return io.Discard, nil
}

func (w *recordingWriter) AddEntryFromFile(sourcePath, name string) error {
	w.provider.calls = append(w.provider.calls, fmt.Sprintf("copy %s -> %s", sourcePath, name))
	w.entries = append(w.entries, name)
	return nil
}

func (w *recordingWriter) Commit() (levelpack.PublishedArchive, error) {
	w.provider.calls = append(w.provider.calls, "commit")
	if w.provider.commitErr != nil {
		return levelpack.PublishedArchive{}, w.provider.commitErr
	}
	return levelpack.PublishedArchive{Path: w.path, Entries: w.entries, SHA256: "digest", Size: 42}, nil
}

func (w *recordingWriter) Close() error {
	w.provider.calls = append(w.provider.calls, "close")
	return nil
}
