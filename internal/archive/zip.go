package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/tagurit/levelpack/internal/checksum"
	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// Compression level bounds accepted by WithCompressionLevel.
const (
	MinCompressionLevel     = flate.DefaultCompression
	MaxCompressionLevel     = flate.BestCompression
	DefaultCompressionLevel = flate.DefaultCompression
)

// levelIDCommentPrefix prefixes the archive comment holding the level identity.
const levelIDCommentPrefix = "levelid="

// ZipProvider creates zip-backed level archives.
type ZipProvider struct {
	compressionLevel int
	sources          filesystem.FileSystemProvider
	now              func() time.Time
}

// Option configures a ZipProvider.
type Option func(*ZipProvider)

// WithCompressionLevel sets the Deflate level, from -1 (default) to 9 (best).
func WithCompressionLevel(level int) Option {
	return func(p *ZipProvider) {
		p.compressionLevel = level
	}
}

// WithSourceFileSystem sets the filesystem AddEntryFromFile reads from.
func WithSourceFileSystem(fsys filesystem.FileSystemProvider) Option {
	return func(p *ZipProvider) {
		p.sources = fsys
	}
}

// WithClock sets the clock used for entry modification times.
func WithClock(now func() time.Time) Option {
	return func(p *ZipProvider) {
		p.now = now
	}
}

// NewZipProvider creates a provider with default compression reading sources from the OS filesystem.
func NewZipProvider(opts ...Option) *ZipProvider {
	p := &ZipProvider{
		compressionLevel: DefaultCompressionLevel,
		sources:          filesystem.NewOSFileSystem(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidateCompressionLevel checks that level is a supported Deflate level.
func ValidateCompressionLevel(level int) error {
	if level < MinCompressionLevel || level > MaxCompressionLevel {
		return fmt.Errorf("compression level %d out of range [%d, %d]: %w",
			level, MinCompressionLevel, MaxCompressionLevel, levelpack.ErrInvalidConfig)
	}
	return nil
}

// CreateForUpdate implements levelpack.ArchiveProvider.
//
// The archive is built in a temporary file in the destination's directory,
// which must already exist. Nothing at archivePath changes until Commit.
func (p *ZipProvider) CreateForUpdate(archivePath string, mode levelpack.ExistingMode) (levelpack.ArchiveWriter, error) {
	if err := ValidateCompressionLevel(p.compressionLevel); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = levelpack.ExistingUpdate
	}

	info, err := os.Stat(archivePath)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to access %s: %w", levelpack.ErrArchiveIO, archivePath, err)
	}
	if exists && !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: destination is not a regular file: %s", levelpack.ErrArchiveIO, archivePath)
	}
	if exists && mode == levelpack.ExistingFail {
		return nil, fmt.Errorf("%w: %s", levelpack.ErrArchiveExists, archivePath)
	}

	w := &zipWriter{
		path:    archivePath,
		sources: p.sources,
		now:     p.now,
		written: make(map[string]bool),
	}

	if exists && mode == levelpack.ExistingUpdate {
		existing, err := zip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("%w: existing archive %s cannot be read (use overwrite mode to replace it): %w",
				levelpack.ErrArchiveIO, archivePath, err)
		}
		existing.RegisterDecompressor(zip.Deflate, flate.NewReader)
		w.existing = existing
	}

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), "."+filepath.Base(archivePath)+".*.tmp")
	if err != nil {
		_ = w.closeExisting()
		return nil, fmt.Errorf("%w: failed to create temporary archive: %w", levelpack.ErrArchiveIO, err)
	}
	w.tmp = tmp

	level := p.compressionLevel
	w.zw = zip.NewWriter(tmp)
	w.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	return w, nil
}

// zipWriter implements levelpack.ArchiveWriter on a temporary zip file.
type zipWriter struct {
	path     string
	sources  filesystem.FileSystemProvider
	now      func() time.Time
	tmp      *os.File
	zw       *zip.Writer
	existing *zip.ReadCloser
	written  map[string]bool
	order    []string
	done     bool
}

// CreateEntry implements levelpack.ArchiveWriter.
func (w *zipWriter) CreateEntry(name string) (io.Writer, error) {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: w.now(),
	}
	return w.createHeader(header)
}

// AddEntryFromFile implements levelpack.ArchiveWriter.
func (w *zipWriter) AddEntryFromFile(sourcePath, name string) error {
	info, err := w.sources.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: failed to stat %s: %w", levelpack.ErrArchiveIO, sourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file: %s", levelpack.ErrArchiveIO, sourcePath)
	}

	src, err := w.sources.OpenFile(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", levelpack.ErrArchiveIO, sourcePath, err)
	}
	defer src.Close()

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("%w: failed to create header for %s: %w", levelpack.ErrArchiveIO, sourcePath, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := w.createHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("%w: failed to copy %s into %s: %w", levelpack.ErrArchiveIO, sourcePath, name, err)
	}
	return nil
}

func (w *zipWriter) createHeader(header *zip.FileHeader) (io.Writer, error) {
	if w.done {
		return nil, fmt.Errorf("%w: archive %s is already closed", levelpack.ErrArchiveIO, w.path)
	}
	if err := validateEntryName(header.Name); err != nil {
		return nil, err
	}
	if w.written[header.Name] {
		return nil, fmt.Errorf("%w: duplicate entry %q", levelpack.ErrArchiveIO, header.Name)
	}

	entry, err := w.zw.CreateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create entry %s: %w", levelpack.ErrArchiveIO, header.Name, err)
	}
	w.written[header.Name] = true
	w.order = append(w.order, header.Name)
	return entry, nil
}

// Commit implements levelpack.ArchiveWriter.
func (w *zipWriter) Commit() (levelpack.PublishedArchive, error) {
	if w.done {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: archive %s is already closed", levelpack.ErrArchiveIO, w.path)
	}

	entries := append([]string(nil), w.order...)
	if w.existing != nil {
		for _, f := range w.existing.File {
			if w.written[f.Name] {
				continue
			}
			if err := w.zw.Copy(f); err != nil {
				return levelpack.PublishedArchive{}, fmt.Errorf("%w: failed to carry over entry %s: %w", levelpack.ErrArchiveIO, f.Name, err)
			}
			entries = append(entries, f.Name)
		}
	}

	if err := w.zw.SetComment(levelIDCommentPrefix + metadata.LevelID(filepath.Base(w.path)).String()); err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	if err := w.zw.Close(); err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: failed to finish archive: %w", levelpack.ErrArchiveIO, err)
	}
	if err := w.tmp.Sync(); err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: failed to sync archive: %w", levelpack.ErrArchiveIO, err)
	}

	size, err := w.tmp.Seek(0, io.SeekEnd)
	if err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	if _, err := w.tmp.Seek(0, io.SeekStart); err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	digest, err := checksum.New().CalculateReader(w.tmp)
	if err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}

	if err := w.tmp.Chmod(0644); err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	if err := w.tmp.Close(); err != nil {
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	// The reader must be released before the rename replaces the file it reads.
	if err := w.closeExisting(); err != nil {
		_ = os.Remove(w.tmp.Name())
		w.done = true
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	if err := os.Rename(w.tmp.Name(), w.path); err != nil {
		_ = os.Remove(w.tmp.Name())
		w.done = true
		return levelpack.PublishedArchive{}, fmt.Errorf("%w: failed to publish %s: %w", levelpack.ErrArchiveIO, w.path, err)
	}
	w.done = true

	return levelpack.PublishedArchive{
		Path:    w.path,
		Entries: entries,
		SHA256:  digest,
		Size:    size,
	}, nil
}

// Close implements levelpack.ArchiveWriter.
func (w *zipWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	var errs []error
	if err := w.tmp.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errs = append(errs, err)
	}
	if err := os.Remove(w.tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	if err := w.closeExisting(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (w *zipWriter) closeExisting() error {
	if w.existing == nil {
		return nil
	}
	err := w.existing.Close()
	w.existing = nil
	return err
}

// validateEntryName rejects names that could escape the extraction directory.
func validateEntryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty entry name", levelpack.ErrArchiveIO)
	}
	if strings.Contains(name, "\\") || strings.HasPrefix(name, "/") || path.IsAbs(name) {
		return fmt.Errorf("%w: entry name %q must be a relative slash-separated path", levelpack.ErrArchiveIO, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." || part == "." || part == "" {
			return fmt.Errorf("%w: entry name %q contains an invalid path segment", levelpack.ErrArchiveIO, name)
		}
	}
	return nil
}

// Verify ZipProvider implements the interface at compile time
var _ levelpack.ArchiveProvider = (*ZipProvider)(nil)
