// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws centralizes AWS SDK v2 config loading and S3 client
// construction so stores never touch SDK plumbing directly.
package aws
