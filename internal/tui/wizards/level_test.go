package wizards

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/internal/scaffold"
)

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestLevelWizard_CollectsOptions(t *testing.T) {
	var m tea.Model = NewLevelWizard(scaffold.ProjectOptions{})

	m, cmd := send(t, m,
		runes("Forest Ruins"), tab,
		runes("Jane"), tab,
		runes("A mossy temple"), tab,
		runes("art/cover.png"), enter,
	)
	assert.False(t, isQuit(cmd), "finishing the details moves on instead of quitting")
	assert.Contains(t, m.View(), "Manifest format")

	m, cmd = send(t, m, down, enter)
	require.True(t, isQuit(cmd))

	result := m.(LevelWizard).Result()
	assert.False(t, result.Cancelled)
	assert.Equal(t, scaffold.ProjectOptions{
		Name:        "Forest Ruins",
		Author:      "Jane",
		Description: "A mossy temple",
		Thumbnail:   "art/cover.png",
		Format:      metadata.FormatTOML,
	}, result.Options)
	assert.Empty(t, m.View())
}

func TestLevelWizard_Prefilled(t *testing.T) {
	var m tea.Model = NewLevelWizard(scaffold.ProjectOptions{
		Name:   "Forest Ruins",
		Author: "Jane",
		Format: metadata.FormatTOML,
	})

	m, cmd := send(t, m, enter, enter, enter, enter, enter)
	require.True(t, isQuit(cmd))

	result := m.(LevelWizard).Result()
	assert.Equal(t, "Forest Ruins", result.Options.Name)
	assert.Empty(t, result.Options.Thumbnail)
	assert.Equal(t, metadata.FormatTOML, result.Options.Format)
}

func TestLevelWizard_RequiresNameAndAuthor(t *testing.T) {
	var m tea.Model = NewLevelWizard(scaffold.ProjectOptions{})

	m, cmd := send(t, m, enter, enter, enter, enter)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "New level", "still on the details step")
	assert.Contains(t, m.View(), "this field is required")
}

func TestLevelWizard_RejectsUnknownThumbnailFormat(t *testing.T) {
	var m tea.Model = NewLevelWizard(scaffold.ProjectOptions{Name: "A", Author: "B"})

	m, _ = send(t, m, tab, tab, tab, runes("cover.tiff"), enter)
	assert.Contains(t, m.View(), "thumbnail must be one of")
	assert.NotContains(t, m.View(), "Manifest format")
}

func TestLevelWizard_Cancel(t *testing.T) {
	var m tea.Model = NewLevelWizard(scaffold.ProjectOptions{})
	m, cmd := send(t, m, runes("Half"), esc)
	require.True(t, isQuit(cmd))
	assert.True(t, m.(LevelWizard).Result().Cancelled)

	m = NewLevelWizard(scaffold.ProjectOptions{Name: "A", Author: "B"})
	m, cmd = send(t, m, enter, enter, enter, enter, esc)
	require.True(t, isQuit(cmd))
	assert.True(t, m.(LevelWizard).Result().Cancelled)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateThumbnail(""))
	assert.NoError(t, validateThumbnail("cover.webp"))
	assert.Error(t, validateThumbnail("cover"))
	assert.Error(t, validateThumbnail("cover.PNG"), "formats are case-sensitive")

	assert.NoError(t, validateDescription(""))
	assert.Error(t, validateDescription("   "))
	assert.Error(t, singleLine("a\nb"))
}
