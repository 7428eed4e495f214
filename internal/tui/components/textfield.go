package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tagurit/levelpack/internal/tui"
)

// ErrFieldRequired is returned when a required field is empty.
var ErrFieldRequired = fieldError("this field is required")

type fieldError string

func (e fieldError) Error() string { return string(e) }

// TextField is a labeled single-line text input.
type TextField struct {
	key       string
	label     string
	hint      string
	input     textinput.Model
	focused   bool
	required  bool
	validator func(string) error
	err       error
}

// NewTextField creates a text field. key identifies the field in Form.Values.
func NewTextField(key, label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 48

	return TextField{
		key:   key,
		label: label,
		input: ti,
	}
}

// WithRequired marks the field as required.
func (t TextField) WithRequired(required bool) TextField {
	t.required = required
	return t
}

// WithValidator sets a validation function run on every change.
func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

// WithValue sets the initial value.
func (t TextField) WithValue(value string) TextField {
	t.input.SetValue(value)
	return t
}

// WithHint sets a muted line shown under the input.
func (t TextField) WithHint(hint string) TextField {
	t.hint = hint
	return t
}

// Key returns the field key.
func (t TextField) Key() string {
	return t.key
}

// Focus focuses the text field.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur removes focus from the text field.
func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
}

// IsFocused returns true if the field is focused.
func (t TextField) IsFocused() bool {
	return t.focused
}

// Update forwards msg to the input and revalidates.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	if t.validator != nil {
		t.err = t.validator(t.input.Value())
	}
	return t, cmd
}

// View renders label, input, hint and error.
func (t TextField) View() string {
	var b strings.Builder

	label := t.label
	if t.required {
		label += tui.ErrorStyle.Render(tui.SymbolRequired)
	}
	b.WriteString(tui.LabelStyle.Render(label))
	b.WriteString("\n")

	style := tui.InputStyle
	if t.focused {
		style = tui.FocusedInputStyle
	}
	b.WriteString(style.Render(t.input.View()))

	if t.hint != "" {
		b.WriteString("\n")
		b.WriteString(tui.HelpStyle.UnsetMarginTop().Render(t.hint))
	}
	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(t.err.Error()))
	}
	return b.String()
}

// Value returns the current value.
func (t TextField) Value() string {
	return t.input.Value()
}

// Error returns the current validation error.
func (t TextField) Error() error {
	return t.err
}

// Validate runs the required check and the validator.
func (t *TextField) Validate() error {
	if t.required && strings.TrimSpace(t.input.Value()) == "" {
		t.err = ErrFieldRequired
		return t.err
	}
	if t.validator != nil {
		t.err = t.validator(t.input.Value())
		return t.err
	}
	t.err = nil
	return nil
}
