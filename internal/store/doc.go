// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store selects and drives corpus storage backends (local directory
// trees and s3 buckets) and resolves user version specs against the versions
// a backend advertises.
package store
