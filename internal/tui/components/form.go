package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tagurit/levelpack/internal/tui"
)

// Form collects several text fields. Enter on the last field submits once
// every field validates; the form then reports Submitted and returns tea.Quit.
type Form struct {
	title     string
	fields    []TextField
	focusIdx  int
	submitted bool
	cancelled bool
	keyMap    formKeyMap
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// NewForm creates a form with the first field focused.
func NewForm(title string, fields ...TextField) Form {
	f := Form{
		title:  title,
		fields: fields,
		keyMap: defaultFormKeyMap(),
	}
	if len(f.fields) > 0 {
		f.fields[0].Focus()
	}
	return f
}

// Init implements tea.Model.
func (f Form) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keyMap.Next):
			return f.moveFocus(1)
		case key.Matches(msg, f.keyMap.Prev):
			return f.moveFocus(-1)
		case key.Matches(msg, f.keyMap.Submit):
			if f.focusIdx < len(f.fields)-1 {
				return f.moveFocus(1)
			}
			if f.validate() {
				f.submitted = true
				return f, tea.Quit
			}
			return f, nil
		case key.Matches(msg, f.keyMap.Cancel):
			f.cancelled = true
			return f, tea.Quit
		}
	}

	if f.focusIdx < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focusIdx], cmd = f.fields[f.focusIdx].Update(msg)
		return f, cmd
	}
	return f, nil
}

// moveFocus moves by delta fields. Moving forward requires the current field to validate.
func (f Form) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := f.focusIdx + delta
	if next < 0 || next >= len(f.fields) {
		return f, nil
	}
	if delta > 0 {
		if err := f.fields[f.focusIdx].Validate(); err != nil {
			return f, nil
		}
	}

	f.fields[f.focusIdx].Blur()
	f.focusIdx = next
	return f, f.fields[f.focusIdx].Focus()
}

func (f *Form) validate() bool {
	valid := true
	for i := range f.fields {
		if err := f.fields[i].Validate(); err != nil {
			valid = false
		}
	}
	return valid
}

// View implements tea.Model.
func (f Form) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		b.WriteString(field.View())
		if i < len(f.fields)-1 {
			b.WriteString("\n\n")
		}
	}

	b.WriteString(tui.HelpStyle.Render("\ntab next • shift+tab prev • enter submit • esc cancel"))
	return b.String()
}

// Submitted returns true if the form was submitted.
func (f Form) Submitted() bool {
	return f.submitted
}

// Cancelled returns true if the form was cancelled.
func (f Form) Cancelled() bool {
	return f.cancelled
}

// Focused returns the index of the focused field.
func (f Form) Focused() int {
	return f.focusIdx
}

// Values returns field values by key.
func (f Form) Values() map[string]string {
	result := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		result[field.key] = field.Value()
	}
	return result
}

// Field returns a field by index.
func (f Form) Field(idx int) *TextField {
	if idx >= 0 && idx < len(f.fields) {
		return &f.fields[idx]
	}
	return nil
}
