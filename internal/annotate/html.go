// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"html"
	"strings"
)

// Background colors for changed lines, matching the GitHub-style palette the
// web UI stylesheet assumes.
const (
	deletedBackground = "#ffeef0"
	addedBackground   = "#e6ffed"
)

// HTMLRenderer renders tagged lines as a <pre> block of per-line <span>
// elements. Entry text is untrusted input; this renderer is the single point
// where it gets HTML-escaped.
type HTMLRenderer struct{}

// Render implements Renderer.
func (HTMLRenderer) Render(lines []Line) string {
	var b strings.Builder
	b.WriteString("<pre>")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`<span class="`)
		b.WriteString(line.Tag.String())
		b.WriteString(`"`)
		switch line.Tag {
		case Deleted:
			b.WriteString(` style="background-color: ` + deletedBackground + `;"`)
		case Added:
			b.WriteString(` style="background-color: ` + addedBackground + `;"`)
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(line.Text))
		b.WriteString("</span>")
	}
	b.WriteString("</pre>")
	return b.String()
}
