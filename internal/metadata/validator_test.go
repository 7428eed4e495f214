package metadata

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator(fsys filesystem.FileSystemProvider) *Validator {
	return NewValidator(fsys, func() time.Time { return fixedNow })
}

func validMeta() *levelpack.LevelMetaData {
	return &levelpack.LevelMetaData{
		Name:         "Forest Ruins",
		Author:       "Jane",
		CreationTime: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		LastUpdated:  time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Version:      1,
	}
}

func TestValidate_ValidWithoutThumbnail(t *testing.T) {
	v := newTestValidator(filesystem.NewMemoryFileSystem("/levels"))

	ok, msg := v.Validate(validMeta())

	assert.True(t, ok)
	assert.Empty(t, msg)
	assert.NoError(t, v.Check(validMeta()))
}

func TestValidate_ValidWithThumbnail(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/levels")
	fsys.AddFileBytes("cover.png", []byte{0x89, 'P', 'N', 'G'})
	meta := validMeta()
	meta.Description = levelpack.Some("Overgrown temple")
	meta.ThumbnailPath = levelpack.Some("/levels/cover.png")

	ok, msg := newTestValidator(fsys).Validate(meta)

	assert.True(t, ok, msg)
}

func TestValidate_Rules(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/levels")
	fsys.AddFileBytes("cover.png", []byte("png"))
	fsys.AddFileBytes("cover.PNG", []byte("png"))
	fsys.AddFileBytes("cover.tiff", []byte("tiff"))
	fsys.AddFileBytes("cover", []byte("raw"))
	fsys.AddDir("folder.png")

	tests := []struct {
		name     string
		mutate   func(m *levelpack.LevelMetaData)
		wantRule string
		wantMsg  string
	}{
		{
			name:     "empty name",
			mutate:   func(m *levelpack.LevelMetaData) { m.Name = "" },
			wantRule: RuleName,
			wantMsg:  "Level name cannot be null, empty, or only consisting of whitespace characters.",
		},
		{
			name:     "whitespace name",
			mutate:   func(m *levelpack.LevelMetaData) { m.Name = " \t\n" },
			wantRule: RuleName,
		},
		{
			name:     "blank description",
			mutate:   func(m *levelpack.LevelMetaData) { m.Description = levelpack.Some("   ") },
			wantRule: RuleDescription,
			wantMsg:  "Level description cannot be empty or only consisting of whitespace characters. Omit it instead.",
		},
		{
			name:     "empty description",
			mutate:   func(m *levelpack.LevelMetaData) { m.Description = levelpack.Some("") },
			wantRule: RuleDescription,
		},
		{
			name:     "blank author",
			mutate:   func(m *levelpack.LevelMetaData) { m.Author = "  " },
			wantRule: RuleAuthor,
			wantMsg:  "Author name cannot be null, empty, or only consisting of whitespace characters.",
		},
		{
			name:     "missing thumbnail",
			mutate:   func(m *levelpack.LevelMetaData) { m.ThumbnailPath = levelpack.Some("/levels/missing.png") },
			wantRule: RuleThumbnailExists,
			wantMsg:  "Thumbnail does not exist at the specified path: /levels/missing.png",
		},
		{
			name:     "thumbnail is a directory",
			mutate:   func(m *levelpack.LevelMetaData) { m.ThumbnailPath = levelpack.Some("/levels/folder.png") },
			wantRule: RuleThumbnailFile,
			wantMsg:  "The specified path for the thumbnail does not point to a file: /levels/folder.png",
		},
		{
			name:     "thumbnail format not allowed",
			mutate:   func(m *levelpack.LevelMetaData) { m.ThumbnailPath = levelpack.Some("/levels/cover.tiff") },
			wantRule: RuleThumbnailFormat,
			wantMsg:  "Thumbnail is not one of the allowed image file formats: png, jpg, jpeg, bmp, gif, webp",
		},
		{
			name:     "thumbnail extension is case-sensitive",
			mutate:   func(m *levelpack.LevelMetaData) { m.ThumbnailPath = levelpack.Some("/levels/cover.PNG") },
			wantRule: RuleThumbnailFormat,
		},
		{
			name:     "thumbnail without extension",
			mutate:   func(m *levelpack.LevelMetaData) { m.ThumbnailPath = levelpack.Some("/levels/cover") },
			wantRule: RuleThumbnailFormat,
		},
		{
			name:     "creation in the future",
			mutate:   func(m *levelpack.LevelMetaData) { m.CreationTime = fixedNow.Add(time.Second) },
			wantRule: RuleCreationTime,
			wantMsg:  "Creation time cannot be set in the future.",
		},
		{
			name:     "update in the future",
			mutate:   func(m *levelpack.LevelMetaData) { m.LastUpdated = fixedNow.Add(time.Hour) },
			wantRule: RuleLastUpdated,
			wantMsg:  "Time of last update cannot be set in the future.",
		},
		{
			name:     "update before creation",
			mutate:   func(m *levelpack.LevelMetaData) { m.LastUpdated = m.CreationTime.Add(-time.Minute) },
			wantRule: RuleUpdateOrder,
			wantMsg:  "Time of last update cannot be before creation time.",
		},
		{
			name:     "version zero",
			mutate:   func(m *levelpack.LevelMetaData) { m.Version = 0 },
			wantRule: RuleVersion,
			wantMsg:  "Level version cannot be lower than 1",
		},
		{
			name:     "negative version",
			mutate:   func(m *levelpack.LevelMetaData) { m.Version = -3 },
			wantRule: RuleVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := validMeta()
			tt.mutate(meta)
			v := newTestValidator(fsys)

			ok, msg := v.Validate(meta)
			assert.False(t, ok)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, msg)
			}

			err := v.Check(meta)
			var verr *levelpack.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantRule, verr.Rule)
			assert.Equal(t, msg, verr.Message)
			assert.ErrorIs(t, err, levelpack.ErrValidation)
		})
	}
}

func TestValidate_NilRecord(t *testing.T) {
	ok, msg := newTestValidator(filesystem.NewMemoryFileSystem("/")).Validate(nil)

	assert.False(t, ok)
	assert.Equal(t, "Data object cannot be null.", msg)
}

func TestValidate_FirstViolationWins(t *testing.T) {
	meta := &levelpack.LevelMetaData{
		Name:          "",
		Author:        "",
		ThumbnailPath: levelpack.Some("/nowhere.txt"),
		CreationTime:  fixedNow.Add(time.Hour),
		LastUpdated:   fixedNow.Add(-time.Hour),
		Version:       0,
	}

	err := newTestValidator(filesystem.NewMemoryFileSystem("/")).Check(meta)

	var verr *levelpack.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, RuleName, verr.Rule)
	assert.True(t, strings.HasPrefix(verr.Message, "Level name"))
}

func TestValidate_ThumbnailSizeBoundary(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/levels")
	fsys.AddFileBytes("exact.png", make([]byte, 10485760))
	fsys.AddFileBytes("over.png", make([]byte, 10485761))
	v := newTestValidator(fsys)

	atLimit := validMeta()
	atLimit.ThumbnailPath = levelpack.Some("/levels/exact.png")
	ok, msg := v.Validate(atLimit)
	assert.True(t, ok, msg)

	overLimit := validMeta()
	overLimit.ThumbnailPath = levelpack.Some("/levels/over.png")
	ok, msg = v.Validate(overLimit)
	assert.False(t, ok)
	assert.Equal(t, "Thumbnail cannot be bigger than 10485760 bytes. Current size: 10485761", msg)
}

// vanishingFileSystem answers the first Stat from memory and reports every
// later path as missing, as if the file was deleted mid-validation.
type vanishingFileSystem struct {
	*filesystem.MemoryFileSystem
	stats int
}

func (f *vanishingFileSystem) Stat(p string) (filesystem.FileInfo, error) {
	f.stats++
	if f.stats > 1 {
		return nil, fs.ErrNotExist
	}
	return f.MemoryFileSystem.Stat(p)
}

func TestValidate_ThumbnailStatOncePerCall(t *testing.T) {
	mem := filesystem.NewMemoryFileSystem("/levels")
	mem.AddFileBytes("over.png", make([]byte, 10485761))
	fsys := &vanishingFileSystem{MemoryFileSystem: mem}
	meta := validMeta()
	meta.ThumbnailPath = levelpack.Some("/levels/over.png")

	ok, msg := newTestValidator(fsys).Validate(meta)

	assert.False(t, ok)
	assert.Equal(t, "Thumbnail cannot be bigger than 10485760 bytes. Current size: 10485761", msg)
	assert.Equal(t, 1, fsys.stats)
}

func TestValidate_ThumbnailStatNotSharedAcrossCalls(t *testing.T) {
	mem := filesystem.NewMemoryFileSystem("/levels")
	mem.AddFileBytes("cover.png", []byte("png"))
	fsys := &vanishingFileSystem{MemoryFileSystem: mem}
	v := newTestValidator(fsys)
	meta := validMeta()
	meta.ThumbnailPath = levelpack.Some("/levels/cover.png")

	ok, msg := v.Validate(meta)
	require.True(t, ok, msg)

	err := v.Check(meta)
	var verr *levelpack.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RuleThumbnailExists, verr.Rule)
	assert.Equal(t, 2, fsys.stats)
}

func TestValidate_TimesEqualToNowAreAccepted(t *testing.T) {
	meta := validMeta()
	meta.CreationTime = fixedNow
	meta.LastUpdated = fixedNow

	ok, msg := newTestValidator(filesystem.NewMemoryFileSystem("/")).Validate(meta)

	assert.True(t, ok, msg)
}

func TestValidate_TimeZonesCompareAsInstants(t *testing.T) {
	// 13:00 at UTC+2 is 11:00 UTC, before fixedNow.
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	meta := validMeta()
	meta.CreationTime = time.Date(2026, 3, 1, 13, 0, 0, 0, plusTwo)
	meta.LastUpdated = meta.CreationTime

	ok, msg := newTestValidator(filesystem.NewMemoryFileSystem("/")).Validate(meta)

	assert.True(t, ok, msg)
}

func TestValidate_DoesNotMutateRecord(t *testing.T) {
	meta := validMeta()
	meta.Name = "  Forest Ruins  "
	meta.Description = levelpack.Some("  Overgrown  ")
	before := *meta

	newTestValidator(filesystem.NewMemoryFileSystem("/")).Validate(meta)

	assert.Equal(t, before, *meta)
}

func TestValidate_PackageLevelUsesWallClock(t *testing.T) {
	meta := validMeta()
	meta.CreationTime = time.Now().Add(24 * time.Hour)
	meta.LastUpdated = meta.CreationTime

	ok, msg := Validate(meta)

	assert.False(t, ok)
	assert.Equal(t, "Creation time cannot be set in the future.", msg)
}

func TestThumbnailFormat(t *testing.T) {
	tests := map[string]string{
		"cover.png":           "png",
		"/a/b/cover.jpeg":     "jpeg",
		"cover.PNG":           "PNG",
		"archive.tar.gz":      "gz",
		"noextension":         "noextension",
		"dir.v2/cover":        "v2/cover",
		"trailing.":           "",
		"C:\\maps\\cover.gif": "gif",
	}
	for input, want := range tests {
		assert.Equal(t, want, ThumbnailFormat(input), input)
	}
}
