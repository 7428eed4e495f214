// Package wizards holds the interactive flows used by the CLI.
package wizards

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/internal/scaffold"
	"github.com/tagurit/levelpack/internal/tui/components"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// Form field keys.
const (
	fieldName        = "name"
	fieldAuthor      = "author"
	fieldDescription = "description"
	fieldThumbnail   = "thumbnail"
)

type levelStep int

const (
	stepDetails levelStep = iota
	stepFormat
	stepDone
)

// LevelResult is what the level wizard collected.
type LevelResult struct {
	Cancelled bool
	Options   scaffold.ProjectOptions
}

// LevelWizard asks for the metadata of a new level, then for the manifest format.
type LevelWizard struct {
	step    levelStep
	details components.Form
	format  components.Selector
	result  LevelResult
}

// NewLevelWizard creates the wizard with fields prefilled from initial.
func NewLevelWizard(initial scaffold.ProjectOptions) LevelWizard {
	details := components.NewForm("New level",
		components.NewTextField(fieldName, "Level name", "Forest Ruins").
			WithRequired(true).
			WithValue(initial.Name).
			WithValidator(singleLine),
		components.NewTextField(fieldAuthor, "Author", "Your name").
			WithRequired(true).
			WithValue(initial.Author).
			WithValidator(singleLine),
		components.NewTextField(fieldDescription, "Description", "optional").
			WithValue(initial.Description).
			WithValidator(validateDescription),
		components.NewTextField(fieldThumbnail, "Thumbnail", "optional, e.g. thumbnail.png").
			WithValue(initial.Thumbnail).
			WithHint("Formats: "+strings.Join(levelpack.AllowedThumbnailFormats, ", ")).
			WithValidator(validateThumbnail),
	)

	format := components.NewSelector("Manifest format", []components.Option{
		{Label: "YAML", Description: "level.yaml", Value: string(metadata.FormatYAML)},
		{Label: "TOML", Description: "level.toml", Value: string(metadata.FormatTOML)},
	})
	if initial.Format != "" {
		format = format.WithCursorOn(string(initial.Format))
	}

	return LevelWizard{
		details: details,
		format:  format,
	}
}

// Init implements tea.Model.
func (w LevelWizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. The sub-models quit when they finish; the
// wizard turns that into a step change until the last step is done.
func (w LevelWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch w.step {
	case stepDetails:
		m, cmd := w.details.Update(msg)
		w.details = m.(components.Form)
		switch {
		case w.details.Cancelled():
			return w.cancel()
		case w.details.Submitted():
			w.step = stepFormat
			return w, nil
		}
		return w, cmd

	case stepFormat:
		m, cmd := w.format.Update(msg)
		w.format = m.(components.Selector)
		switch {
		case w.format.Cancelled():
			return w.cancel()
		case w.format.Submitted():
			w.result = LevelResult{Options: w.options()}
			w.step = stepDone
			return w, tea.Quit
		}
		return w, cmd
	}
	return w, nil
}

func (w LevelWizard) cancel() (tea.Model, tea.Cmd) {
	w.result = LevelResult{Cancelled: true}
	w.step = stepDone
	return w, tea.Quit
}

func (w LevelWizard) options() scaffold.ProjectOptions {
	values := w.details.Values()
	return scaffold.ProjectOptions{
		Name:        strings.TrimSpace(values[fieldName]),
		Author:      strings.TrimSpace(values[fieldAuthor]),
		Description: values[fieldDescription],
		Thumbnail:   strings.TrimSpace(values[fieldThumbnail]),
		Format:      metadata.ManifestFormat(w.format.Value()),
	}
}

// View implements tea.Model.
func (w LevelWizard) View() string {
	switch w.step {
	case stepDetails:
		return w.details.View()
	case stepFormat:
		return w.format.View()
	}
	return ""
}

// Result returns what the wizard collected.
func (w LevelWizard) Result() LevelResult {
	return w.result
}

// RunLevelWizard runs the wizard on the terminal.
func RunLevelWizard(initial scaffold.ProjectOptions) (LevelResult, error) {
	final, err := tea.NewProgram(NewLevelWizard(initial), tea.WithAltScreen()).Run()
	if err != nil {
		return LevelResult{}, fmt.Errorf("level wizard failed: %w", err)
	}
	wizard, ok := final.(LevelWizard)
	if !ok {
		return LevelResult{}, errors.New("level wizard returned an unexpected model")
	}
	return wizard.Result(), nil
}

func singleLine(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("must be a single line")
	}
	return nil
}

func validateDescription(s string) error {
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("leave empty for no description")
	}
	return singleLine(s)
}

func validateThumbnail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !slices.Contains(levelpack.AllowedThumbnailFormats, metadata.ThumbnailFormat(s)) {
		return fmt.Errorf("thumbnail must be one of: %s", strings.Join(levelpack.AllowedThumbnailFormats, ", "))
	}
	return nil
}
