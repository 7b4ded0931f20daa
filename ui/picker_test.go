package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	p, ok := next.(Picker)
	require.True(t, ok)
	return p, cmd
}

func typeText(t *testing.T, m Picker, s string) Picker {
	t.Helper()
	for _, r := range s {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var candidates = []string{
	"/home/u/projects",
	"/srv/proj",
	"/home/u/documents",
	"/tmp/scratch",
}

func TestNewPickerRanksByLastComponent(t *testing.T) {
	m := NewPicker(candidates, "pro")
	assert.Equal(t, []string{"/srv/proj", "/home/u/projects"}, m.matches)

	m = NewPicker(candidates, "")
	assert.Len(t, m.matches, len(candidates))
	assert.Equal(t, "/srv/proj", m.matches[0])
}

func TestPickerTypingFilters(t *testing.T) {
	m := NewPicker(candidates, "")
	m = typeText(t, m, "doc")
	assert.Equal(t, []string{"/home/u/documents"}, m.matches)

	m = typeText(t, m, "zz")
	assert.Empty(t, m.matches)
	assert.Contains(t, m.View(), "(no matches)")
}

func TestPickerSelect(t *testing.T) {
	m := NewPicker(candidates, "pro")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor, "cursor stops at the last match")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "/home/u/projects", got)
}

func TestPickerEnterWithoutMatches(t *testing.T) {
	m := NewPicker(candidates, "zzz")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestPickerCancel(t *testing.T) {
	m := NewPicker(candidates, "pro")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestPickerViewMarksCursor(t *testing.T) {
	m := NewPicker(candidates, "pro")
	view := m.View()
	assert.Contains(t, view, "> /srv/proj")
	assert.Contains(t, view, "2/4")
}
