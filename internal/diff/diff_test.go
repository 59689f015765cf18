// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "line1", []string{"line1"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\nline2\n", []string{"line1", "line2"}},
		{"blank middle line", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lines(tt.text))
		})
	}
}

func TestDiff_BothEmpty(t *testing.T) {
	assert.Empty(t, Diff(nil, nil))
}

func TestDiff_LeftEmpty(t *testing.T) {
	ops := Diff(nil, []string{"a", "b"})
	assert.Equal(t, []LineOp{
		{Op: OnlyRight, Text: "a"},
		{Op: OnlyRight, Text: "b"},
	}, ops)
}

func TestDiff_RightEmpty(t *testing.T) {
	ops := Diff([]string{"a", "b"}, nil)
	assert.Equal(t, []LineOp{
		{Op: OnlyLeft, Text: "a"},
		{Op: OnlyLeft, Text: "b"},
	}, ops)
}

func TestDiff_Identical(t *testing.T) {
	lines := []string{"line1", "line2"}
	ops := Diff(lines, lines)
	assert.Equal(t, []LineOp{
		{Op: Equal, Text: "line1"},
		{Op: Equal, Text: "line2"},
	}, ops)
}

func TestDiff_TrailingModification(t *testing.T) {
	ops := Diff([]string{"line1", "line2"}, []string{"line1", "line2x"})

	assert.Contains(t, ops, LineOp{Op: Equal, Text: "line1"})
	assert.Contains(t, ops, LineOp{Op: OnlyLeft, Text: "line2"})
	assert.Contains(t, ops, LineOp{Op: OnlyRight, Text: "line2x"})
	assert.Len(t, ops, 3)
}

func TestDiff_CommonLinesSurvivesChangedBlocks(t *testing.T) {
	left := []string{"intro", "old detail", "common", "trailer"}
	right := []string{"intro", "new detail one", "new detail two", "common", "trailer"}

	ops := Diff(left, right)

	// The common lines must be recognized as equal, not absorbed into the
	// changed block around them.
	assert.Contains(t, ops, LineOp{Op: Equal, Text: "intro"})
	assert.Contains(t, ops, LineOp{Op: Equal, Text: "common"})
	assert.Contains(t, ops, LineOp{Op: Equal, Text: "trailer"})
	assert.Contains(t, ops, LineOp{Op: OnlyLeft, Text: "old detail"})
	assert.Contains(t, ops, LineOp{Op: OnlyRight, Text: "new detail one"})
	assert.Contains(t, ops, LineOp{Op: OnlyRight, Text: "new detail two"})
}

func TestDiff_EveryLineAccountedForOnce(t *testing.T) {
	left := []string{"a", "b", "c", "d"}
	right := []string{"a", "x", "c", "y", "d", "z"}

	ops := Diff(left, right)

	var gotLeft, gotRight []string
	for _, op := range ops {
		switch op.Op {
		case Equal:
			gotLeft = append(gotLeft, op.Text)
			gotRight = append(gotRight, op.Text)
		case OnlyLeft:
			gotLeft = append(gotLeft, op.Text)
		case OnlyRight:
			gotRight = append(gotRight, op.Text)
		}
	}

	// Interleaving reconstructs both sides exactly, order preserved.
	assert.Equal(t, left, gotLeft)
	assert.Equal(t, right, gotRight)
}

func TestDiff_Deterministic(t *testing.T) {
	left := []string{"a", "b", "c"}
	right := []string{"c", "b", "a"}

	first := Diff(left, right)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Diff(left, right))
	}
}
