// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"github.com/refdiff/refdiff/internal/diff"
)

// Tag is the discrete classification a renderer consumes. The visual encoding
// (color, CSS class, terminal style) is the renderer's business, not ours.
type Tag int

const (
	Unchanged Tag = iota
	Added
	Deleted
)

// String returns the tag's canonical name, which doubles as the CSS class in
// HTML output.
func (t Tag) String() string {
	switch t {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Line is one tagged line of a rendered side. Text is carried verbatim: no
// trimming and no escaping happen here. Escaping markup-significant
// characters is the renderer's responsibility.
type Line struct {
	Tag  Tag
	Text string
}

// Renderer turns one side's tagged lines into a single rendered string:
// each line in a span-like annotation, lines joined by a newline, the whole
// thing wrapped in one block-level container.
type Renderer interface {
	Render(lines []Line) string
}

// Annotate converts a pairwise diff into the tagged line sequences for each
// side. Equal lines land on both sides as Unchanged; OnlyLeft lines land on
// the left side as Deleted; OnlyRight lines land on the right side as Added.
// The transform is pure and order preserving: no line is dropped, duplicated,
// or reordered relative to the diff output.
func Annotate(ops []diff.LineOp) (left, right []Line) {
	for _, op := range ops {
		switch op.Op {
		case diff.Equal:
			left = append(left, Line{Tag: Unchanged, Text: op.Text})
			right = append(right, Line{Tag: Unchanged, Text: op.Text})
		case diff.OnlyLeft:
			left = append(left, Line{Tag: Deleted, Text: op.Text})
		case diff.OnlyRight:
			right = append(right, Line{Tag: Added, Text: op.Text})
		}
	}
	return left, right
}
