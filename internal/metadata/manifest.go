package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// Manifest file names, in lookup order.
const (
	ManifestFileYAML = "level.yaml"
	ManifestFileYML  = "level.yml"
	ManifestFileTOML = "level.toml"
)

// Manifest keys.
const (
	manifestKeyName        = "name"
	manifestKeyDescription = "description"
	manifestKeyAuthor      = "author"
	manifestKeyThumbnail   = "thumbnail"
	manifestKeyCreated     = "created"
	manifestKeyUpdated     = "updated"
	manifestKeyVersion     = "version"
	manifestKeyContent     = "content"
)

var knownManifestKeys = []string{
	manifestKeyName,
	manifestKeyDescription,
	manifestKeyAuthor,
	manifestKeyThumbnail,
	manifestKeyCreated,
	manifestKeyUpdated,
	manifestKeyVersion,
	manifestKeyContent,
}

// ManifestFormat identifies a manifest encoding.
type ManifestFormat string

const (
	FormatYAML ManifestFormat = "yaml"
	FormatTOML ManifestFormat = "toml"
)

// ParseManifestFormat converts a user-supplied format name.
func ParseManifestFormat(s string) (ManifestFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown manifest format %q (expected yaml or toml): %w", s, levelpack.ErrInvalidConfig)
}

// FileName returns the default manifest file name for the format.
func (f ManifestFormat) FileName() string {
	if f == FormatTOML {
		return ManifestFileTOML
	}
	return ManifestFileYAML
}

// FormatForPath picks the manifest format from a file extension.
func FormatForPath(path string) ManifestFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Manifest is a loaded level manifest.
type Manifest struct {
	// Path is the manifest file that was read.
	Path string

	// Meta is the level metadata. Relative thumbnail paths are already resolved
	// against the manifest's directory.
	Meta levelpack.LevelMetaData

	// ContentPath optionally points at the level content file, resolved like the thumbnail.
	ContentPath levelpack.Optional[string]
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// FindManifest returns the path of the first manifest file present in dir.
func FindManifest(fsys filesystem.FileSystemProvider, dir string) (string, error) {
	for _, name := range []string{ManifestFileYAML, ManifestFileYML, ManifestFileTOML} {
		candidate := filepath.Join(dir, name)
		info, err := fsys.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no %s, %s or %s in %s",
		levelpack.ErrManifestNotFound, ManifestFileYAML, ManifestFileYML, ManifestFileTOML, dir)
}

// LoadManifest reads the manifest at path. When path is a directory, the
// manifest inside it is located with FindManifest.
func LoadManifest(fsys filesystem.FileSystemProvider, path string) (*Manifest, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", levelpack.ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to access manifest %s: %w", path, err)
	}

	if info.IsDir() {
		if path, err = FindManifest(fsys, path); err != nil {
			return nil, err
		}
	}

	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return ParseManifest(content, FormatForPath(path), path)
}

// manifestValue is a scalar manifest value normalized to text.
type manifestValue struct {
	text string
	line int
}

// ParseManifest decodes manifest content. manifestPath is used for error
// reporting and to resolve relative paths.
func ParseManifest(content []byte, format ManifestFormat, manifestPath string) (*Manifest, error) {
	var (
		values map[string]manifestValue
		err    error
	)
	switch format {
	case FormatTOML:
		values, err = decodeTOML(content, manifestPath)
	default:
		values, err = decodeYAML(content, manifestPath)
	}
	if err != nil {
		return nil, err
	}

	return buildManifest(values, manifestPath)
}

func decodeYAML(content []byte, manifestPath string) (map[string]manifestValue, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &ManifestError{
			FilePath: manifestPath,
			Line:     lineFromMessage(err.Error()),
			Message:  strings.TrimPrefix(err.Error(), "yaml: "),
			Hint:     "Check the YAML syntax (indentation, colons after keys).\n\n" + manifestFormatHint,
			Err:      err,
		}
	}

	if len(doc.Content) == 0 {
		return nil, &ManifestError{FilePath: manifestPath, Message: "manifest is empty", Hint: manifestFormatHint}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ManifestError{
			FilePath: manifestPath,
			Line:     root.Line,
			Message:  "manifest must be a mapping of keys to values",
			Hint:     manifestFormatHint,
		}
	}

	values := make(map[string]manifestValue, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if err := checkKey(values, key.Value, key.Line, manifestPath); err != nil {
			return nil, err
		}
		if value.Kind != yaml.ScalarNode {
			return nil, &ManifestError{
				FilePath: manifestPath,
				Line:     value.Line,
				Field:    key.Value,
				Message:  "value must be a single scalar",
			}
		}
		if value.Tag == "!!null" {
			continue
		}
		values[key.Value] = manifestValue{text: value.Value, line: value.Line}
	}
	return values, nil
}

func decodeTOML(content []byte, manifestPath string) (map[string]manifestValue, error) {
	raw := make(map[string]interface{})
	if _, err := toml.Decode(string(content), &raw); err != nil {
		line := 0
		var perr toml.ParseError
		if errors.As(err, &perr) {
			line = perr.Line
		}
		return nil, &ManifestError{
			FilePath: manifestPath,
			Line:     line,
			Message:  err.Error(),
			Hint:     "Check the TOML syntax (quoted strings, key = value).",
			Err:      err,
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]manifestValue, len(raw))
	for _, key := range keys {
		if err := checkKey(values, key, 0, manifestPath); err != nil {
			return nil, err
		}
		switch v := raw[key].(type) {
		case string:
			values[key] = manifestValue{text: v}
		case int64:
			values[key] = manifestValue{text: strconv.FormatInt(v, 10)}
		case time.Time:
			values[key] = manifestValue{text: v.Format(time.RFC3339Nano)}
		default:
			return nil, &ManifestError{
				FilePath: manifestPath,
				Field:    key,
				Message:  fmt.Sprintf("unsupported value of type %T", v),
			}
		}
	}
	return values, nil
}

func checkKey(seen map[string]manifestValue, key string, line int, manifestPath string) error {
	known := false
	for _, k := range knownManifestKeys {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return &ManifestError{
			FilePath: manifestPath,
			Line:     line,
			Field:    key,
			Message:  "unknown key",
			Hint:     "Supported keys: " + strings.Join(knownManifestKeys, ", "),
		}
	}
	if _, dup := seen[key]; dup {
		return &ManifestError{FilePath: manifestPath, Line: line, Field: key, Message: "key is defined more than once"}
	}
	return nil
}

func buildManifest(values map[string]manifestValue, manifestPath string) (*Manifest, error) {
	m := &Manifest{Path: manifestPath}
	dir := filepath.Dir(manifestPath)

	if v, ok := values[manifestKeyName]; ok {
		m.Meta.Name = v.text
	}
	if v, ok := values[manifestKeyAuthor]; ok {
		m.Meta.Author = v.text
	}
	if v, ok := values[manifestKeyDescription]; ok {
		m.Meta.Description = levelpack.Some(v.text)
	}
	if v, ok := values[manifestKeyThumbnail]; ok {
		m.Meta.ThumbnailPath = levelpack.Some(resolvePath(dir, v.text))
	}
	if v, ok := values[manifestKeyContent]; ok {
		m.ContentPath = levelpack.Some(resolvePath(dir, v.text))
	}

	var err error
	if m.Meta.CreationTime, err = requiredTime(values, manifestKeyCreated, manifestPath); err != nil {
		return nil, err
	}
	if m.Meta.LastUpdated, err = requiredTime(values, manifestKeyUpdated, manifestPath); err != nil {
		return nil, err
	}

	if v, ok := values[manifestKeyVersion]; ok {
		version, err := strconv.Atoi(strings.TrimSpace(v.text))
		if err != nil {
			return nil, &ManifestError{
				FilePath: manifestPath,
				Line:     v.line,
				Field:    manifestKeyVersion,
				Message:  fmt.Sprintf("%q is not a whole number", v.text),
				Err:      err,
			}
		}
		m.Meta.Version = version
	}

	return m, nil
}

func requiredTime(values map[string]manifestValue, key, manifestPath string) (time.Time, error) {
	v, ok := values[key]
	if !ok {
		return time.Time{}, &ManifestError{
			FilePath: manifestPath,
			Field:    key,
			Message:  "required key is missing",
			Hint:     "Timestamps use RFC 3339, e.g. 2026-01-02T15:04:05Z",
		}
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v.text))
	if err != nil {
		return time.Time{}, &ManifestError{
			FilePath: manifestPath,
			Line:     v.line,
			Field:    key,
			Message:  fmt.Sprintf("%q is not an RFC 3339 timestamp", v.text),
			Hint:     "Timestamps use RFC 3339, e.g. 2026-01-02T15:04:05Z",
			Err:      err,
		}
	}
	return t, nil
}

// resolvePath anchors relative manifest paths at the manifest's directory.
// The joined path keeps the text after the final '.', so format checks see
// the same extension the author wrote.
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
