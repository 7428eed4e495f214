// Package scaffold creates new level projects from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/internal/logging"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

//go:embed all:templates
var templatesFS embed.FS

const templateSuffix = ".tmpl"

// GetTemplatesFS returns the embedded templates filesystem for testing purposes.
func GetTemplatesFS() embed.FS {
	return templatesFS
}

// ProjectOptions holds the values a new level project is created with.
type ProjectOptions struct {
	Name        string
	Author      string
	Description string // Empty leaves the key commented out
	Thumbnail   string // Empty leaves the key commented out
	Format      metadata.ManifestFormat
}

// templateData is what the templates see.
type templateData struct {
	ProjectOptions
	Created string
	Slug    string
}

// Scaffolder handles level project initialization from templates.
type Scaffolder struct {
	templates filesystem.FileSystemProvider
	logger    levelpack.Logger
	now       func() time.Time
}

// NewScaffolder creates a Scaffolder over the embedded templates.
// A nil logger discards progress messages.
func NewScaffolder(logger levelpack.Logger) *Scaffolder {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scaffolder{
		templates: filesystem.NewEmbedFileSystem(templatesFS, "templates"),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateProject renders the template set for opts.Format into targetPath and
// returns the path of the written manifest.
func (s *Scaffolder) CreateProject(targetPath string, opts ProjectOptions) (string, error) {
	if opts.Format == "" {
		opts.Format = metadata.FormatYAML
	}
	if strings.TrimSpace(opts.Name) == "" {
		return "", fmt.Errorf("%w: a level name is required", levelpack.ErrInvalidConfig)
	}
	if strings.ContainsAny(opts.Name+opts.Author+opts.Description+opts.Thumbnail, "\r\n") {
		return "", fmt.Errorf("%w: level fields must be single-line", levelpack.ErrInvalidConfig)
	}

	templateDir := string(opts.Format)
	dir, err := s.templates.Open(templateDir)
	if err != nil {
		return "", fmt.Errorf("template '%s' not found: %w", templateDir, err)
	}

	isEmpty, err := isDirectoryEmpty(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to check target directory: %w", err)
	}
	if !isEmpty {
		return "", fmt.Errorf("target directory '%s' is not empty\n\nlevelpack init requires an empty directory to avoid overwriting existing files.\n\nOptions:\n• Choose a different location\n• Remove existing files manually\n• Use a new directory name", targetPath)
	}

	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create project directory: %w", err)
	}

	data := templateData{
		ProjectOptions: opts,
		Created:        metadata.FormatTimestamp(s.now().Truncate(time.Second)),
		Slug:           levelSlug(opts.Name),
	}

	s.logger.Verbose("Creating %s level project '%s' at %s", opts.Format, opts.Name, targetPath)

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if file.Info().IsDir() {
			return nil
		}
		return s.renderFile(file, targetPath, data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to render templates: %w", err)
	}

	s.logger.Verbose("Project created successfully")
	return filepath.Join(targetPath, opts.Format.FileName()), nil
}

func (s *Scaffolder) renderFile(file filesystem.File, targetPath string, data templateData) error {
	content, err := file.ReadContent()
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", file.Path(), err)
	}

	tmpl, err := template.New(file.RelativePath()).Funcs(template.FuncMap{"quote": quote}).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", file.RelativePath(), err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", file.RelativePath(), err)
	}

	relPath := strings.TrimSuffix(file.RelativePath(), templateSuffix)
	targetFilePath := filepath.Join(targetPath, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(targetFilePath), 0755); err != nil {
		return err
	}

	s.logger.Verbose("Creating file: %s", relPath)
	if err := os.WriteFile(targetFilePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", targetFilePath, err)
	}
	return nil
}

// quote renders s as a double-quoted string literal valid in both YAML and TOML.
func quote(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// levelSlug is the archive base name of a level without its extension.
func levelSlug(name string) string {
	meta := levelpack.LevelMetaData{Name: name}
	return strings.TrimSuffix(meta.ArchiveBaseName(), "."+levelpack.ArchiveExtension)
}

// ListTemplates returns available template names, one per manifest format.
func ListTemplates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() {
			templates = append(templates, entry.Name())
		}
	}
	sort.Strings(templates)
	return templates, nil
}

// isDirectoryEmpty checks if a directory is empty or doesn't exist.
// Returns (true, nil) if directory doesn't exist or is empty.
// Returns (false, nil) if directory exists and contains files/subdirectories.
// Returns (false, error) if there's an error checking the directory.
func isDirectoryEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}

	if !info.IsDir() {
		return false, fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	return len(entries) == 0, nil
}

// BuildFileTree creates a visual tree representation of the directory structure.
func BuildFileTree(rootPath string) (string, error) {
	var sb strings.Builder

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = rootPath
	}
	sb.WriteString(absPath + "/\n")

	if err := writeTree(&sb, rootPath, ""); err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}
	return sb.String(), nil
}

func writeTree(sb *strings.Builder, dir, indent string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		last := i == len(entries)-1
		branch, childIndent := "├── ", indent+"│   "
		if last {
			branch, childIndent = "└── ", indent+"    "
		}

		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		sb.WriteString(indent + branch + name + "\n")

		if entry.IsDir() {
			if err := writeTree(sb, filepath.Join(dir, entry.Name()), childIndent); err != nil {
				return err
			}
		}
	}
	return nil
}
