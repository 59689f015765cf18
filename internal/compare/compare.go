// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"errors"
	"sort"

	"github.com/apex/log"

	"github.com/refdiff/refdiff/internal/annotate"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/diff"
)

// ErrInsufficientSelection is returned when fewer than two distinct versions
// are selected for comparison.
var ErrInsufficientSelection = errors.New("at least two distinct versions are required for comparison")

// Result maps differing entry names to their per-version rendered output.
type Result map[string]map[string]string

// Compare takes an ordered selection of version ids plus their fully loaded
// corpora and returns the rendered diff for every entry that differs anywhere
// across the selection. Entries are visited in lexicographic order so output
// is reproducible. An entry missing from a version's corpus is compared as
// empty text, not treated as an error.
//
// For selections of more than two versions, every pair (i,j) with i<j is
// rendered and merged per version, later pairs overwriting earlier ones
// (last-pair-wins). That quirk is kept for compatibility with pairwise-only
// comparison; see the package doc.
func Compare(versions []string, corpora map[string]corpus.Corpus, r annotate.Renderer) (Result, error) {
	if len(distinct(versions)) < 2 {
		return nil, ErrInsufficientSelection
	}

	names := entryUnion(versions, corpora)
	log.Debugf("comparing %d versions, %d entries", len(versions), len(names))

	result := Result{}
	for _, name := range names {
		// Per-version text: the entry's text where present, else empty.
		texts := make(map[string]string, len(versions))
		for _, v := range versions {
			texts[v] = corpora[v][name]
		}

		if !differs(versions, texts) {
			continue
		}

		result[name] = renderPairs(versions, texts, r)
	}

	log.Debugf("found %d differing entries", len(result))
	return result, nil
}

// differs reports whether any version's text departs from the first selected
// version's text.
func differs(versions []string, texts map[string]string) bool {
	for _, v := range versions[1:] {
		if texts[v] != texts[versions[0]] {
			return true
		}
	}
	return false
}

// distinct returns the unique version ids, order preserved.
func distinct(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	var result []string
	for _, v := range versions {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// entryUnion collects every entry name present in any selected corpus, sorted
// lexicographically.
func entryUnion(versions []string, corpora map[string]corpus.Corpus) []string {
	seen := map[string]struct{}{}
	for _, v := range versions {
		for name := range corpora[v] {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// renderPairs renders one entry across every pair of the selection in pair
// order (0,1), (0,2), ..., (1,2), ..., merging per version as it goes.
func renderPairs(versions []string, texts map[string]string, r annotate.Renderer) map[string]string {
	rendered := make(map[string]string, len(versions))

	for i := 0; i < len(versions); i++ {
		for j := i + 1; j < len(versions); j++ {
			vl, vr := versions[i], versions[j]

			ops := diff.Diff(diff.Lines(texts[vl]), diff.Lines(texts[vr]))
			left, right := annotate.Annotate(ops)

			rendered[vl] = r.Render(left)
			rendered[vr] = r.Render(right)
		}
	}

	return rendered
}
