// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdiff/refdiff/internal/annotate"
	"github.com/refdiff/refdiff/internal/corpus"
)

var html = annotate.HTMLRenderer{}

func TestCompare_FewerThanTwoVersions(t *testing.T) {
	corpora := map[string]corpus.Corpus{"A": {"FOO": "x"}}

	_, err := Compare([]string{"A"}, corpora, html)
	assert.ErrorIs(t, err, ErrInsufficientSelection)

	_, err = Compare(nil, corpora, html)
	assert.ErrorIs(t, err, ErrInsufficientSelection)
}

func TestCompare_DuplicateSelectionIsNotDistinct(t *testing.T) {
	corpora := map[string]corpus.Corpus{"A": {"FOO": "x"}}

	_, err := Compare([]string{"A", "A"}, corpora, html)
	assert.ErrorIs(t, err, ErrInsufficientSelection)
}

func TestCompare_IdenticalCorpora(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"A": {"FOO": "line1\nline2", "BAR": "y"},
		"B": {"FOO": "line1\nline2", "BAR": "y"},
	}

	result, err := Compare([]string{"A", "B"}, corpora, html)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCompare_SingleDifferingEntry(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"A": {"FOO": "line1\nline2", "SAME": "s"},
		"B": {"FOO": "line1\nline2x", "SAME": "s"},
	}

	result, err := Compare([]string{"A", "B"}, corpora, html)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Contains(t, result, "FOO")

	// A keeps line1 unchanged and loses line2; B keeps line1 and gains line2x.
	assert.Equal(t,
		`<pre><span class="unchanged">line1</span>`+"\n"+
			`<span class="deleted" style="background-color: #ffeef0;">line2</span></pre>`,
		result["FOO"]["A"])
	assert.Equal(t,
		`<pre><span class="unchanged">line1</span>`+"\n"+
			`<span class="added" style="background-color: #e6ffed;">line2x</span></pre>`,
		result["FOO"]["B"])
}

func TestCompare_EntryMissingFromOneVersion(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"A": {"ABORT": "x"},
		"B": {"ABORT": "x", "ALTER": "y"},
	}

	result, err := Compare([]string{"A", "B"}, corpora, html)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Contains(t, result, "ALTER")
	assert.NotContains(t, result, "ABORT")

	// Absent on A: empty rendering. Present on B: all-added.
	assert.Equal(t, "<pre></pre>", result["ALTER"]["A"])
	assert.Equal(t,
		`<pre><span class="added" style="background-color: #e6ffed;">y</span></pre>`,
		result["ALTER"]["B"])
}

func TestCompare_OrderInsensitiveEntrySet(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"A": {"FOO": "a", "BAR": "b", "BAZ": "c"},
		"B": {"FOO": "a2", "BAR": "b", "BAZ": "c2"},
	}

	forward, err := Compare([]string{"A", "B"}, corpora, html)
	require.NoError(t, err)
	backward, err := Compare([]string{"B", "A"}, corpora, html)
	require.NoError(t, err)

	keys := func(r Result) []string {
		var out []string
		for k := range r {
			out = append(out, k)
		}
		return out
	}
	assert.ElementsMatch(t, keys(forward), keys(backward))
}

func TestCompare_SameCorpusTwiceDistinctIDs(t *testing.T) {
	shared := corpus.Corpus{"FOO": "x\ny"}
	corpora := map[string]corpus.Corpus{"A": shared, "B": shared}

	result, err := Compare([]string{"A", "B"}, corpora, html)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCompare_ThreeWayLastPairWins(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"A": {"FOO": "one"},
		"B": {"FOO": "two"},
		"C": {"FOO": "three"},
	}

	result, err := Compare([]string{"A", "B", "C"}, corpora, html)
	require.NoError(t, err)
	require.Contains(t, result, "FOO")

	// Pair order is (A,B), (A,C), (B,C). A's final rendering comes from the
	// (A,C) pair; B's and C's from (B,C).
	assert.Equal(t,
		`<pre><span class="deleted" style="background-color: #ffeef0;">one</span></pre>`,
		result["FOO"]["A"])
	assert.Equal(t,
		`<pre><span class="deleted" style="background-color: #ffeef0;">two</span></pre>`,
		result["FOO"]["B"])
	assert.Equal(t,
		`<pre><span class="added" style="background-color: #e6ffed;">three</span></pre>`,
		result["FOO"]["C"])
}

func TestCompare_EveryLinePartitionedExactlyOnce(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"A": {"FOO": "a\nb\nc\nd"},
		"B": {"FOO": "a\nx\nc\ny\nd\nz"},
	}

	result, err := Compare([]string{"A", "B"}, corpora, annotate.TermRenderer{})
	require.NoError(t, err)
	require.Contains(t, result, "FOO")

	// With the term renderer the gutter tells us the partition directly.
	assert.Equal(t, "  a\n- b\n  c\n  d\n", result["FOO"]["A"])
	assert.Equal(t, "  a\n+ x\n  c\n+ y\n  d\n+ z\n", result["FOO"]["B"])
}
