// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package server is the web UI for browsing and comparing corpus versions.
package server // no-cloc
