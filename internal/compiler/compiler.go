package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tagurit/levelpack/internal/archive"
	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/internal/logging"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// LevelCompiler implements levelpack.Compiler.
// Thread-Safety: NOT safe for concurrent compiles writing the same archive.
type LevelCompiler struct {
	outputDir string
	fs        filesystem.FileSystemProvider
	provider  levelpack.ArchiveProvider
	resolver  levelpack.AssetResolver
	logger    levelpack.Logger
	mode      levelpack.ExistingMode
	now       func() time.Time
}

// Option configures a LevelCompiler.
type Option func(*LevelCompiler)

// WithFileSystem sets the filesystem thumbnails and level content are read from.
// It is used for validation and, unless WithArchiveProvider is given, for copying.
func WithFileSystem(fsys filesystem.FileSystemProvider) Option {
	return func(c *LevelCompiler) {
		c.fs = fsys
	}
}

// WithArchiveProvider sets the provider that writes archives.
func WithArchiveProvider(p levelpack.ArchiveProvider) Option {
	return func(c *LevelCompiler) {
		c.provider = p
	}
}

// WithAssetResolver sets the resolver used by CompileLevelContent.
func WithAssetResolver(r levelpack.AssetResolver) Option {
	return func(c *LevelCompiler) {
		c.resolver = r
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l levelpack.Logger) Option {
	return func(c *LevelCompiler) {
		c.logger = l
	}
}

// WithExistingMode selects how an existing archive is treated.
func WithExistingMode(mode levelpack.ExistingMode) Option {
	return func(c *LevelCompiler) {
		c.mode = mode
	}
}

// WithClock sets the clock validation compares timestamps against.
func WithClock(now func() time.Time) Option {
	return func(c *LevelCompiler) {
		c.now = now
	}
}

// New creates a compiler writing archives into outputDir.
//
// Defaults: OS filesystem, zip archives, no asset resolver, update mode,
// wall clock, and a logger that discards everything.
func New(outputDir string, opts ...Option) *LevelCompiler {
	c := &LevelCompiler{
		outputDir: outputDir,
		mode:      levelpack.ExistingUpdate,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.fs == nil {
		c.fs = filesystem.NewOSFileSystem()
	}
	if c.provider == nil {
		c.provider = archive.NewZipProvider(archive.WithSourceFileSystem(c.fs))
	}
	if c.logger == nil {
		c.logger = logging.NewNullLogger()
	}
	if c.now == nil {
		c.now = func() time.Time { return time.Now().UTC() }
	}
	return c
}

// OutputDir returns the directory archives are written to.
func (c *LevelCompiler) OutputDir() string {
	return c.outputDir
}

// ArchivePath returns where the archive for meta is written.
// It fails with levelpack.ErrInvalidArchiveName when the level name cannot
// name a file inside the output directory.
func (c *LevelCompiler) ArchivePath(meta *levelpack.LevelMetaData) (string, error) {
	name := meta.ArchiveBaseName()
	base := strings.TrimSuffix(name, "."+levelpack.ArchiveExtension)

	if strings.TrimSpace(meta.Name) == "" || base == "." || base == ".." || strings.ContainsAny(name, "/\\\x00") {
		return "", fmt.Errorf("%w: level name %q cannot be used as a file name", levelpack.ErrInvalidArchiveName, meta.Name)
	}
	return filepath.Join(c.outputDir, name), nil
}

// CompileLevel validates meta and writes its descriptor and thumbnail into
// the level archive.
func (c *LevelCompiler) CompileLevel(meta *levelpack.LevelMetaData) (*levelpack.Artifact, error) {
	return c.compile(meta, levelpack.None[string]())
}

// CompileLevelContent compiles like CompileLevel and additionally packages the
// level content at contentPath together with the assets it needs that the base
// game does not ship. Without an asset resolver it fails with
// levelpack.ErrNotImplemented and publishes nothing.
func (c *LevelCompiler) CompileLevelContent(meta *levelpack.LevelMetaData, contentPath string) (*levelpack.Artifact, error) {
	return c.compile(meta, levelpack.Some(contentPath))
}

func (c *LevelCompiler) compile(meta *levelpack.LevelMetaData, contentPath levelpack.Optional[string]) (*levelpack.Artifact, error) {
	if err := metadata.NewValidator(c.fs, c.now).Check(meta); err != nil {
		return nil, err
	}

	archivePath, err := c.ArchivePath(meta)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory %s: %w", levelpack.ErrArchiveIO, c.outputDir, err)
	}

	c.logger.Verbose("Opening %s (mode: %s)", archivePath, c.mode)
	w, err := c.provider.CreateForUpdate(archivePath, c.mode)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	var entries []string

	if err := c.writeDescriptor(w, meta); err != nil {
		return nil, err
	}
	entries = append(entries, levelpack.DescriptorEntryName)

	if thumbnail, ok := meta.ThumbnailPath.Get(); ok {
		name := levelpack.ThumbnailEntryBase + filepath.Ext(thumbnail)
		c.logger.Verbose("Adding thumbnail %s as %s", thumbnail, name)
		if err := w.AddEntryFromFile(thumbnail, name); err != nil {
			return nil, fmt.Errorf("failed to add thumbnail: %w", err)
		}
		entries = append(entries, name)
	}

	if content, ok := contentPath.Get(); ok {
		added, err := c.addContent(w, content)
		if err != nil {
			return nil, err
		}
		entries = append(entries, added...)
	}

	published, err := w.Commit()
	if err != nil {
		return nil, err
	}

	levelID := metadata.LevelID(filepath.Base(archivePath)).String()
	c.logger.Verbose("Published %s (%d bytes, sha256 %s)", published.Path, published.Size, published.SHA256)

	return &levelpack.Artifact{
		Path:    published.Path,
		LevelID: levelID,
		Entries: entries,
		SHA256:  published.SHA256,
		Size:    published.Size,
	}, nil
}

func (c *LevelCompiler) writeDescriptor(w levelpack.ArchiveWriter, meta *levelpack.LevelMetaData) error {
	c.logger.Verbose("Writing %s", levelpack.DescriptorEntryName)
	entry, err := w.CreateEntry(levelpack.DescriptorEntryName)
	if err != nil {
		return err
	}
	if err := metadata.WriteDescriptor(entry, meta); err != nil {
		return fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}
	return nil
}

// addContent packages the level content and its dependent assets.
func (c *LevelCompiler) addContent(w levelpack.ArchiveWriter, contentPath string) ([]string, error) {
	name := levelpack.ContentEntryBase + filepath.Ext(contentPath)
	c.logger.Verbose("Adding level content %s as %s", contentPath, name)
	if err := w.AddEntryFromFile(contentPath, name); err != nil {
		return nil, fmt.Errorf("failed to add level content: %w", err)
	}
	added := []string{name}

	if c.resolver == nil {
		return nil, fmt.Errorf("%w: packaging dependent assets requires an asset resolver", levelpack.ErrNotImplemented)
	}

	assets, err := c.resolver.ResolveAssets(contentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assets of %s: %w", contentPath, err)
	}

	for _, asset := range assets {
		entryName := levelpack.AssetsEntryDir + asset.ArchivePath
		c.logger.Verbose("Adding asset %s as %s", asset.SourcePath, entryName)
		if err := w.AddEntryFromFile(asset.SourcePath, entryName); err != nil {
			return nil, fmt.Errorf("failed to add asset %s: %w", asset.ArchivePath, err)
		}
		added = append(added, entryName)
	}
	return added, nil
}

// Verify LevelCompiler implements the interface at compile time
var _ levelpack.Compiler = (*LevelCompiler)(nil)
