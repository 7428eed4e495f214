package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/tagurit/levelpack/internal/checksum"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// EntryInfo describes one archive entry.
type EntryInfo struct {
	Name           string    `json:"name"`
	Size           uint64    `json:"size"`
	CompressedSize uint64    `json:"compressed_size"`
	Modified       time.Time `json:"modified"`
	SHA256         string    `json:"sha256"`
}

// ThumbnailInfo reports the thumbnail entry's image header.
// DecodeError is set when the entry is not a decodable image.
type ThumbnailInfo struct {
	Entry       string `json:"entry"`
	Format      string `json:"format,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	DecodeError string `json:"decode_error,omitempty"`
}

// Info is the result of inspecting a level archive.
type Info struct {
	Path       string                     `json:"path"`
	Size       int64                      `json:"size"`
	SHA256     string                     `json:"sha256"`
	LevelID    string                     `json:"level_id,omitempty"`
	Entries    []EntryInfo                `json:"entries"`
	Descriptor []metadata.DescriptorField `json:"descriptor,omitempty"`
	Thumbnail  *ThumbnailInfo             `json:"thumbnail,omitempty"`
}

// Inspect reads the archive at archivePath and reports its contents.
// A missing or malformed meta.ini is reported as an error, since such a file
// is not a level archive.
func Inspect(archivePath string) (*Info, error) {
	calc := checksum.New()

	digest, err := calc.CalculateFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}

	zr, err := openReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	stat, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", levelpack.ErrArchiveIO, err)
	}

	info := &Info{
		Path:   archivePath,
		Size:   stat.Size(),
		SHA256: digest,
	}
	if id, ok := strings.CutPrefix(zr.Comment, levelIDCommentPrefix); ok {
		info.LevelID = id
	}

	var descriptor []byte
	for _, f := range zr.File {
		content, err := readFile(f)
		if err != nil {
			return nil, err
		}

		info.Entries = append(info.Entries, EntryInfo{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Modified:       f.Modified,
			SHA256:         calc.CalculateRaw(content),
		})

		switch {
		case f.Name == levelpack.DescriptorEntryName:
			descriptor = content
		case isThumbnailEntry(f.Name):
			info.Thumbnail = describeThumbnail(f.Name, content)
		}
	}

	if descriptor == nil {
		return nil, fmt.Errorf("%w: %s has no %s entry", levelpack.ErrArchiveIO, archivePath, levelpack.DescriptorEntryName)
	}
	parsed, err := metadata.ParseDescriptor(descriptor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", levelpack.ErrArchiveIO, levelpack.DescriptorEntryName, err)
	}
	info.Descriptor = parsed.Fields

	return info, nil
}

// ReadEntry returns the uncompressed content of the named entry.
func ReadEntry(archivePath, name string) ([]byte, error) {
	zr, err := openReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == name {
			return readFile(f)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s: %w", name, archivePath, fs.ErrNotExist)
}

// EntryNames lists the entries of the archive in archive order.
func EntryNames(archivePath string) ([]string, error) {
	zr, err := openReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

func openReader(archivePath string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open archive %s: %w", levelpack.ErrArchiveIO, archivePath, err)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)
	return zr, nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open entry %s: %w", levelpack.ErrArchiveIO, f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read entry %s: %w", levelpack.ErrArchiveIO, f.Name, err)
	}
	return content, nil
}

func isThumbnailEntry(name string) bool {
	return strings.HasPrefix(name, levelpack.ThumbnailEntryBase+".") && !strings.Contains(name, "/")
}

func describeThumbnail(name string, content []byte) *ThumbnailInfo {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return &ThumbnailInfo{Entry: name, DecodeError: err.Error()}
	}
	return &ThumbnailInfo{Entry: name, Format: format, Width: cfg.Width, Height: cfg.Height}
}
