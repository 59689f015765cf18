// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/refdiff/refdiff/internal/corpus"
)

// SelectVersions runs the interactive picker and returns the two versions the
// user chose, or nil if they bailed out.
func SelectVersions(items []corpus.Version) []corpus.Version {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 64

	p := tea.NewProgram(model{items: items, filter: ti})
	m, _ := p.Run()
	return m.(model).selected
}

type model struct {
	items     []corpus.Version
	cursor    int
	selected  []corpus.Version
	filter    textinput.Model
	filtering bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// While filtering, everything but enter/esc feeds the text input.
	if m.filtering {
		switch key.String() {
		case "enter", "esc":
			m.filtering = false
			m.cursor = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.cursor = 0
			return m, cmd
		}
	}

	visible := m.visible()

	switch key.String() {
	case "w":
		return m, tea.WindowSize()
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case " ":
		if len(visible) == 0 {
			break
		}
		current := visible[m.cursor]
		if contains(m.selected, current) {
			for i, v := range m.selected {
				if v.ID == current.ID {
					m.selected = append(m.selected[:i], m.selected[i+1:]...)
					break
				}
			}
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, current)
		}
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Select two versions:\n\n"
	for i, v := range m.visible() {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if contains(m.selected, v) {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %-20s %4d %s\n", cursor, mark, v.ID, v.Entries, v.Updated.Format("2006-01-02T15:04:05Z"))
	}

	if m.filtering {
		s += "\n" + m.filter.View() + "\n"
	}
	return s + "\nSPACE: toggle, ENTER: go, /: filter, Q/ESCAPE: quit\n"
}

// visible applies the filter input as a substring match on the version id.
func (m model) visible() []corpus.Version {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return m.items
	}

	var result []corpus.Version
	for _, v := range m.items {
		if strings.Contains(strings.ToLower(v.ID), needle) {
			result = append(result, v)
		}
	}
	return result
}

func contains(versions []corpus.Version, version corpus.Version) bool {
	for _, v := range versions {
		if v.ID == version.ID {
			return true
		}
	}
	return false
}
