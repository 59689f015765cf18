// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package compare orchestrates the version comparison: it unions entry names
// across the selected corpora, detects which entries differ, and renders a
// pairwise annotated diff per entry per version.
//
// Known limitation: with more than two versions selected, a version's
// rendering reflects only the last pair it appeared in (last-pair-wins).
// Anchoring all versions against a single reference would be cleaner but
// would change output for existing callers.
package compare
