// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package corpus defines the corpus data model shared by the stores and the
// comparison engine: a Corpus is the named help-text entries of one product
// version. It also reads packed (and optionally encrypted) corpus snapshots.
package corpus
