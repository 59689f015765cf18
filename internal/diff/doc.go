// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package diff computes line-level alignments between two text blocks and
// classifies every line as equal, only-left, or only-right.
package diff
