package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.focusItem(m.focus - 1)

	case key.Matches(msg, m.keys.Right):
		m.focusItem(m.focus + 1)

	case key.Matches(msg, m.keys.Clear):
		m.clearFocus()

	case key.Matches(msg, m.keys.Launch):
		if m.focus >= 0 {
			cmd := m.launch(m.focus)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if len(m.items) == 0 {
			return m, nil
		}
		m.searching = true
		m.search.SetValue("")
		cmd := m.search.Focus()
		return m, cmd

	default:
		return m, nil
	}

	cmd := m.flush()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.clearFocus()
		cmd := m.flush()
		return m, cmd
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		var launch tea.Cmd
		if m.focus >= 0 {
			launch = m.launch(m.focus)
		}
		cmd := m.flush()
		return m, tea.Batch(cmd, launch)
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var input tea.Cmd
	m.search, input = m.search.Update(msg)
	if i, ok := m.bestMatch(m.search.Value()); ok {
		m.focusItem(i)
	}
	cmd := m.flush()
	return m, tea.Batch(input, cmd)
}

type itemNames []item

func (n itemNames) String(i int) string { return n[i].name }
func (n itemNames) Len() int            { return len(n) }

// bestMatch returns the item whose name best matches query.
func (m Model) bestMatch(query string) (int, bool) {
	if query == "" {
		return 0, false
	}
	matches := fuzzy.FindFrom(query, itemNames(m.items))
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Index, true
}

// focusItem points the dock at item i as if the mouse rested on its center.
// Keyboard focus counts as being inside the dock window.
func (m *Model) focusItem(i int) {
	n := m.engine.Len()
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.focus = i
	m.pointerInside()
	m.engine.PointerMove(m.engine.Center(i))
}

func (m *Model) clearFocus() {
	if m.focus < 0 {
		return
	}
	m.focus = -1
	if m.engine.Pointer().Hovering {
		m.engine.PointerLeave()
	}
}
