// Package imagePicker is the GM's folder browser: a scrollable media listing
// with multi-select, an optional backdrop mark, and a confirm action.
package imagePicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rescp17/slideCaster/internal/style"
	"github.com/rescp17/slideCaster/internal/util"
	"github.com/rescp17/slideCaster/pkg/media"
)

// PickedImagesMsg is emitted when the user confirms a selection. Images keep
// the listing order; the backdrop may be empty.
type PickedImagesMsg struct {
	Images     []string
	Background string
}

// CancelledMsg is emitted when the user backs out without confirming.
type CancelledMsg struct{}

// --- Key Map ---
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	ToggleSelect key.Binding
	SelectAll    key.Binding
	MarkBackdrop key.Binding
	Confirm      key.Binding
	Back         key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	ToggleSelect: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle select")),
	SelectAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	MarkBackdrop: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "mark backdrop")),
	Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show")),
	Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// --- Model ---
type Model struct {
	folder   string
	entries  []media.Entry
	selected map[string]struct{}
	backdrop string
	cursor   int
	offset   int
	height   int
	keys     KeyMap
}

func InitialModel(folder string, entries []media.Entry) Model {
	return Model{
		folder:   folder,
		entries:  entries,
		selected: make(map[string]struct{}),
		keys:     DefaultKeyMap,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CancelledMsg{} }

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset--
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.visibleItems() {
				m.offset++
			}
		}

	case key.Matches(msg, m.keys.ToggleSelect):
		if len(m.entries) == 0 {
			break
		}
		path := m.entries[m.cursor].Path
		if _, ok := m.selected[path]; ok {
			delete(m.selected, path)
		} else {
			m.selected[path] = struct{}{}
		}

	case key.Matches(msg, m.keys.SelectAll):
		for _, entry := range m.entries {
			m.selected[entry.Path] = struct{}{}
		}

	case key.Matches(msg, m.keys.MarkBackdrop):
		if len(m.entries) == 0 {
			break
		}
		path := m.entries[m.cursor].Path
		if m.backdrop == path {
			m.backdrop = "" // marking twice unmarks
		} else {
			m.backdrop = path
		}

	case key.Matches(msg, m.keys.Confirm):
		if len(m.selected) == 0 {
			break
		}
		picked := m.pickedInOrder()
		backdrop := m.backdrop
		return m, func() tea.Msg {
			return PickedImagesMsg{Images: picked, Background: backdrop}
		}
	}
	return m, nil
}

// pickedInOrder returns the selection in listing order; display order is
// what the table will see.
func (m Model) pickedInOrder() []string {
	picked := make([]string, 0, len(m.selected))
	for _, entry := range m.entries {
		if _, ok := m.selected[entry.Path]; ok {
			picked = append(picked, entry.Path)
		}
	}
	return picked
}

func (m Model) visibleItems() int {
	// Leave room for the title, header and help lines.
	if m.height > 8 {
		return m.height - 8
	}
	return 10
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(style.TitleStyle.Render("Pick images to show — "+m.folder) + "\n\n")

	nameWidth := 56
	sizeWidth := 12

	if len(m.entries) == 0 {
		s.WriteString(style.HelpStyle.Render("No showable media in this folder.") + "\n")
		s.WriteString(m.helpView())
		return s.String()
	}

	visible := m.visibleItems()
	start, end := m.offset, m.offset+visible
	if end > len(m.entries) {
		end = len(m.entries)
	}
	if start > len(m.entries) {
		start = len(m.entries)
	}

	for i, entry := range m.entries[start:end] {
		actual := start + i
		if m.cursor == actual {
			s.WriteString(style.CursorStyle.String())
		} else {
			s.WriteString("  ")
		}
		if _, ok := m.selected[entry.Path]; ok {
			s.WriteString(style.SelectedStyle.String())
		} else {
			s.WriteString(style.DeselectedStyle.String())
		}

		name := entry.Path
		if entry.Path == m.backdrop {
			name += " (backdrop)"
		}
		s.WriteString(util.PadRight(name, nameWidth) + " " +
			util.PadRight(util.FormatSize(entry.Size), sizeWidth) + "\n")
	}

	if len(m.entries) > visible {
		s.WriteString(fmt.Sprintf("\n... %d/%d ...\n", m.cursor+1, len(m.entries)))
	}
	s.WriteString("\n" + m.helpView())
	return s.String()
}

func (m Model) helpView() string {
	return style.HelpStyle.Render(
		fmt.Sprintf("'%s' select, '%s' all, '%s' backdrop, '%s' show, '%s' back",
			m.keys.ToggleSelect.Help().Key, m.keys.SelectAll.Help().Key,
			m.keys.MarkBackdrop.Help().Key, m.keys.Confirm.Help().Key, m.keys.Back.Help().Key),
	)
}
