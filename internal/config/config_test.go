package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagurit/levelpack/pkg/levelpack"
)

// envMap returns a lookup function over a fixed environment.
func envMap(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func intPtr(v int) *int { return &v }

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `output_dir: dist
existing: overwrite
compression_level: 9
base_assets: ../game/assets
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "overwrite", cfg.Existing)
	require.NotNil(t, cfg.CompressionLevel)
	assert.Equal(t, 9, *cfg.CompressionLevel)
	assert.Equal(t, "../game/assets", cfg.BaseAssets)
}

func TestLoad_CompressionLevelZeroIsKept(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("compression_level: 0\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.CompressionLevel)
	assert.Equal(t, 0, *cfg.CompressionLevel)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.ErrorIs(t, err, levelpack.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &ProjectConfig{OutputDir: "dist", Existing: "fail", CompressionLevel: intPtr(3)}
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolve_Defaults(t *testing.T) {
	s, err := Resolve("/project", nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/project", DefaultOutputDir), s.OutputDir)
	assert.Equal(t, levelpack.ExistingUpdate, s.Existing)
	assert.Equal(t, -1, s.CompressionLevel)
	assert.Empty(t, s.BaseAssets)
}

func TestResolve_Precedence(t *testing.T) {
	cfg := &ProjectConfig{
		OutputDir:        "dist",
		Existing:         "overwrite",
		CompressionLevel: intPtr(5),
		BaseAssets:       "assets",
	}

	tests := []struct {
		name string
		env  map[string]string
		want Settings
	}{
		{
			name: "file only",
			want: Settings{
				OutputDir:        filepath.Join("/project", "dist"),
				Existing:         levelpack.ExistingOverwrite,
				CompressionLevel: 5,
				BaseAssets:       filepath.Join("/project", "assets"),
			},
		},
		{
			name: "environment wins over file",
			env: map[string]string{
				EnvOutputDir:        "/tmp/levels",
				EnvExisting:         "FAIL",
				EnvCompressionLevel: "0",
				EnvBaseAssets:       "/opt/game/assets",
			},
			want: Settings{
				OutputDir:        "/tmp/levels",
				Existing:         levelpack.ExistingFail,
				CompressionLevel: 0,
				BaseAssets:       "/opt/game/assets",
			},
		},
		{
			name: "blank environment values are ignored",
			env:  map[string]string{EnvOutputDir: "  ", EnvExisting: ""},
			want: Settings{
				OutputDir:        filepath.Join("/project", "dist"),
				Existing:         levelpack.ExistingOverwrite,
				CompressionLevel: 5,
				BaseAssets:       filepath.Join("/project", "assets"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve("/project", cfg, envMap(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  *ProjectConfig
		env  map[string]string
	}{
		{name: "unknown mode in file", cfg: &ProjectConfig{Existing: "append"}},
		{name: "unknown mode in env", env: map[string]string{EnvExisting: "merge"}},
		{name: "compression out of range", cfg: &ProjectConfig{CompressionLevel: intPtr(12)}},
		{name: "compression not a number", env: map[string]string{EnvCompressionLevel: "max"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve("/project", tt.cfg, envMap(tt.env))
			assert.ErrorIs(t, err, levelpack.ErrInvalidConfig)
			assert.Equal(t, levelpack.ExitConfigError, levelpack.ExitCodeForError(err))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFileName),
		[]byte("LEVELPACK_TEST_DOTENV=from-file\nLEVELPACK_TEST_PRESET=from-file\n"), 0644))

	t.Setenv("LEVELPACK_TEST_PRESET", "from-process")
	t.Setenv("LEVELPACK_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LEVELPACK_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(t.TempDir(), dir))

	assert.Equal(t, "from-file", os.Getenv("LEVELPACK_TEST_DOTENV"))
	assert.Equal(t, "from-process", os.Getenv("LEVELPACK_TEST_PRESET"), "process environment wins")
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFileName), []byte("KEY='unterminated\n"), 0644))

	assert.ErrorIs(t, LoadDotEnv(dir), levelpack.ErrInvalidConfig)
}
