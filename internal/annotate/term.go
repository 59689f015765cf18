// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TermRenderer renders tagged lines for terminal display with a difflib-style
// two-character gutter. With Color enabled, changed lines are styled via
// lipgloss; unchanged lines are never styled.
type TermRenderer struct {
	Color bool
}

var (
	deletedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#cb2431", Dark: "#f97583"})
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#22863a", Dark: "#85e89d"})
)

// Render implements Renderer.
func (r TermRenderer) Render(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		var out string
		switch line.Tag {
		case Deleted:
			out = "- " + line.Text
			if r.Color {
				out = deletedStyle.Render(out)
			}
		case Added:
			out = "+ " + line.Text
			if r.Color {
				out = addedStyle.Render(out)
			}
		default:
			out = "  " + line.Text
		}
		rendered = append(rendered, out)
	}
	return strings.Join(rendered, "\n") + "\n"
}
