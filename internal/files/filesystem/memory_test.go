package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_Basic(t *testing.T) {
	mfs := NewMemoryFileSystem("/game/assets")

	mfs.AddFile("textures/stone.png", "png")
	mfs.AddFile("sounds/wind.ogg", "ogg")

	dir, err := mfs.Open("/game/assets")
	require.NoError(t, err, "Failed to open root directory")
	require.NotNil(t, dir)

	var fileCount int
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			fileCount++
			t.Logf("Found file: %s (rel: %s)", file.Path(), file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, fileCount, "Expected 2 files")
}

func TestMemoryFileSystem_WalkRelativeToOpenedDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/game")
	mfs.AddFile("assets/textures/stone.png", "png")

	dir, err := mfs.Open("assets")
	require.NoError(t, err)

	var rel []string
	require.NoError(t, dir.Walk(func(f File, err error) error {
		if !f.Info().IsDir() {
			rel = append(rel, f.RelativePath())
		}
		return nil
	}))
	require.Equal(t, []string{"textures/stone.png"}, rel)
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/level")

	mfs.AddFile("level.yaml", "name: Forest Ruins\n")

	content, err := mfs.ReadFile("/level/level.yaml")
	require.NoError(t, err)
	require.Equal(t, "name: Forest Ruins\n", string(content))

	_, err = mfs.ReadFile("missing.yaml")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_OpenFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/level")
	mfs.AddFileBytes("cover.png", []byte{0x89, 'P', 'N', 'G'})

	rc, err := mfs.OpenFile("cover.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

	mfs.AddDir("shots")
	_, err = mfs.OpenFile("shots")
	require.Error(t, err)
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/level")

	mfs.AddFile("cover.png", "12345")

	info, err := mfs.Stat("/level/cover.png")
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, "cover.png", info.Name())
	require.Equal(t, int64(5), info.Size())

	info, err = mfs.Stat("/level")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	_, err = mfs.Stat("nope.png")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/level")
	mfs.AddFile("b.png", "b")
	mfs.AddFile("a.png", "a")
	mfs.AddFile("sub/c.png", "c")

	entries, err := mfs.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"a.png", "b.png", "sub"}, names)
}

func TestExists(t *testing.T) {
	mfs := NewMemoryFileSystem("/level")
	mfs.AddFile("cover.png", "x")

	ok, err := Exists(mfs, "cover.png")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Exists(mfs, "missing.png")
	require.NoError(t, err)
	require.False(t, ok)
}
