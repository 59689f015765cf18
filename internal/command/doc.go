// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires up the refdiff CLI: the vq, eq, dq, mq, serve and
// completion subcommands, their flags, and the shared query plumbing.
package command
