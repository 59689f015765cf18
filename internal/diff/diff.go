// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op classifies the fate of one line in a pairwise comparison.
type Op int

const (
	// Equal lines are present on both sides.
	Equal Op = iota
	// OnlyLeft lines exist only on the left side (deleted on the right).
	OnlyLeft
	// OnlyRight lines exist only on the right side (added versus the left).
	OnlyRight
)

// LineOp is one classified line of diff output. Taken in order, the Equal ops
// interleaved with the OnlyLeft/OnlyRight ops reconstruct both inputs: every
// input line appears exactly once, in its original relative order within its
// own side.
type LineOp struct {
	Op   Op
	Text string
}

// Lines splits a text block into its lines. The final newline, if any, does
// not produce a trailing empty line; an empty block has no lines at all.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Diff aligns two line sequences and classifies each line as Equal, OnlyLeft,
// or OnlyRight. The alignment is an LCS-style line matching (not a positional
// zip), so unchanged lines are recognized even when surrounded by changed
// blocks. Deterministic for identical inputs; pure function of its inputs.
func Diff(left, right []string) []LineOp {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	dmp := diffmatchpatch.New()
	// No time limit: corpora entries are small and accuracy wins.
	dmp.DiffTimeout = 0

	// Line-level reduction keeps the quadratic core working on one rune per
	// line instead of per character.
	l, r, lineArray := dmp.DiffLinesToChars(joinLines(left), joinLines(right))
	diffs := dmp.DiffMain(l, r, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var ops []LineOp
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = Equal
		case diffmatchpatch.DiffDelete:
			op = OnlyLeft
		case diffmatchpatch.DiffInsert:
			op = OnlyRight
		}
		for _, line := range Lines(d.Text) {
			ops = append(ops, LineOp{Op: op, Text: line})
		}
	}

	return ops
}

// joinLines is the inverse of Lines: every line gets a trailing newline so
// that line-mode diffing never glues the last line of one block onto the
// first line of the next.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
