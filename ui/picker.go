// Package ui provides the interactive directory picker.
package ui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/cle/search"
)

// ErrCancelled is returned by Run when the picker is closed without a choice.
var ErrCancelled = errors.New("no selection")

const defaultHeight = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// Picker is a bubbletea model that filters candidate paths by their last
// component as the user types.
type Picker struct {
	input      textinput.Model
	candidates []string
	matches    []string
	cursor     int
	height     int
	selected   string
	cancelled  bool
}

// NewPicker returns a picker over candidates with the input prefilled to query.
func NewPicker(candidates []string, query string) Picker {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 156
	ti.Width = 40
	ti.SetValue(query)
	ti.Focus()

	m := Picker{
		input:      ti,
		candidates: candidates,
		height:     defaultHeight,
	}
	m.filter()
	return m
}

func (m *Picker) filter() {
	m.matches = search.Rank(m.candidates, m.input.Value(), filepath.Base)
	m.cursor = 0
}

func (m Picker) Init() tea.Cmd {
	return textinput.Blink
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 3; h > 0 {
			m.height = h
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.selected = m.matches[m.cursor]
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j", "tab":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

func (m Picker) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("cle "),
		m.input.View(),
	)

	var lines []string
	if len(m.matches) == 0 {
		lines = append(lines, dimStyle.Render("(no matches)"))
	}

	// Keep the cursor inside the visible window.
	start := 0
	if m.cursor >= m.height {
		start = m.cursor - m.height + 1
	}
	end := min(start+m.height, len(m.matches))
	for i := start; i < end; i++ {
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+m.matches[i]))
		} else {
			lines = append(lines, "  "+m.matches[i])
		}
	}

	help := dimStyle.Render(fmt.Sprintf("%d/%d • Enter: select • Esc: cancel", len(m.matches), len(m.candidates)))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(lines, "\n"),
		help,
	)
}

// Selected reports the chosen path once the program has quit.
func (m Picker) Selected() (string, bool) {
	if m.cancelled || m.selected == "" {
		return "", false
	}
	return m.selected, true
}

// Run shows the picker reading keys from in and drawing to out, and returns
// the chosen candidate.
func Run(candidates []string, query string, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(NewPicker(candidates, query), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(Picker)
	if !ok {
		return "", ErrCancelled
	}
	path, ok := m.Selected()
	if !ok {
		return "", ErrCancelled
	}
	return path, nil
}
