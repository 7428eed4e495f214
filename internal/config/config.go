// Package config loads levelpack.yaml project configuration and resolves it
// against environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tagurit/levelpack/internal/archive"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "levelpack.yaml"
	DotEnvFileName = ".env"

	// DefaultOutputDir is relative to the project directory.
	DefaultOutputDir = "build"
)

// Environment variables that override levelpack.yaml.
const (
	EnvOutputDir        = "LEVELPACK_OUTPUT_DIR"
	EnvExisting         = "LEVELPACK_EXISTING"
	EnvCompressionLevel = "LEVELPACK_COMPRESSION_LEVEL"
	EnvBaseAssets       = "LEVELPACK_BASE_ASSETS"
)

// ProjectConfig mirrors levelpack.yaml. Unset fields fall back to defaults.
type ProjectConfig struct {
	OutputDir        string `yaml:"output_dir,omitempty"`
	Existing         string `yaml:"existing,omitempty"`
	CompressionLevel *int   `yaml:"compression_level,omitempty"`
	BaseAssets       string `yaml:"base_assets,omitempty"`
}

// Settings is the effective configuration of a compile.
type Settings struct {
	OutputDir        string
	Existing         levelpack.ExistingMode
	CompressionLevel int
	// BaseAssets is the directory of shipped base-game assets. Empty disables the catalog.
	BaseAssets string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		OutputDir:        DefaultOutputDir,
		Existing:         levelpack.ExistingUpdate,
		CompressionLevel: archive.DefaultCompressionLevel,
	}
}

// Load reads levelpack.yaml from projectDir.
func Load(projectDir string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", levelpack.ErrInvalidConfig, configPath, err)
	}
	return &cfg, nil
}

// Save writes cfg as levelpack.yaml into projectDir.
func Save(projectDir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectDir, ConfigFileName), data, 0644)
}

// LoadDotEnv loads .env files from the given directories into the process
// environment. Missing files are skipped; variables already set are kept.
func LoadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		envPath := filepath.Join(dir, DotEnvFileName)
		if err := godotenv.Load(envPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: %s: %w", levelpack.ErrInvalidConfig, envPath, err)
		}
	}
	return nil
}

// Resolve merges defaults, cfg (may be nil) and environment overrides read
// through lookupEnv. Relative paths are resolved against projectDir.
// Command-line flags are applied by the caller on top of the result.
func Resolve(projectDir string, cfg *ProjectConfig, lookupEnv func(string) (string, bool)) (Settings, error) {
	s := DefaultSettings()
	existing := string(s.Existing)

	if cfg != nil {
		if cfg.OutputDir != "" {
			s.OutputDir = cfg.OutputDir
		}
		if cfg.Existing != "" {
			existing = cfg.Existing
		}
		if cfg.CompressionLevel != nil {
			s.CompressionLevel = *cfg.CompressionLevel
		}
		s.BaseAssets = cfg.BaseAssets
	}

	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if v, ok := nonEmptyEnv(lookupEnv, EnvOutputDir); ok {
		s.OutputDir = v
	}
	if v, ok := nonEmptyEnv(lookupEnv, EnvExisting); ok {
		existing = v
	}
	if v, ok := nonEmptyEnv(lookupEnv, EnvCompressionLevel); ok {
		level, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s must be an integer, got %q", levelpack.ErrInvalidConfig, EnvCompressionLevel, v)
		}
		s.CompressionLevel = level
	}
	if v, ok := nonEmptyEnv(lookupEnv, EnvBaseAssets); ok {
		s.BaseAssets = v
	}

	mode, err := levelpack.ParseExistingMode(existing)
	if err != nil {
		return Settings{}, err
	}
	s.Existing = mode

	if err := archive.ValidateCompressionLevel(s.CompressionLevel); err != nil {
		return Settings{}, err
	}

	s.OutputDir = resolvePath(projectDir, s.OutputDir)
	if s.BaseAssets != "" {
		s.BaseAssets = resolvePath(projectDir, s.BaseAssets)
	}
	return s, nil
}

func nonEmptyEnv(lookupEnv func(string) (string, bool), key string) (string, bool) {
	v, ok := lookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
