// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package annotate turns classified diff output into tagged per-side line
// sequences and renders them for a given output medium (HTML or terminal).
package annotate
