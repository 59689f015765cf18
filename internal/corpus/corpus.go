// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Corpus maps entry names (e.g. "ALTER TABLE") to their full help text for a
// single product version. A Corpus is loaded once per request and never
// mutated afterwards.
type Corpus map[string]string

// Version describes one available corpus.
type Version struct {
	ID      string    `attr:"id" json:"id" yaml:"id"`
	Number  float64   `attr:"number" json:"number" yaml:"number"`
	Entries int       `attr:"entries" json:"entries" yaml:"entries"`
	Updated time.Time `attr:"updated" json:"updated" yaml:"updated"`
}

// NotFoundError indicates that no corpus exists for the requested version id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no corpus found for version %q", e.ID)
}

// IOError indicates that an individual entry could not be read while loading
// a corpus. It is distinct from the (normal) absence of an entry.
type IOError struct {
	ID    string
	Entry string
	Err   error
}

func (e IOError) Error() string {
	return fmt.Sprintf("failed to read entry %q of version %q: %v", e.Entry, e.ID, e.Err)
}

func (e IOError) Unwrap() error { return e.Err }

// ParseNumber extracts the numeric portion of a version id of the shape
// prefix_<number>, e.g. "postgres_9.6" -> 9.6. The number is interpreted as a
// float so that 9.6 sorts below 10.
func ParseNumber(id string) (float64, error) {
	idx := strings.LastIndex(id, "_")
	if idx < 0 || idx == len(id)-1 {
		return 0, fmt.Errorf("version id %q has no numeric suffix", id)
	}
	n, err := strconv.ParseFloat(id[idx+1:], 64)
	if err != nil {
		return 0, fmt.Errorf("version id %q has a non-numeric suffix: %w", id, err)
	}
	return n, nil
}

// SortVersions orders versions ascending by their parsed number, with the id
// as a tie breaker so the order is total and reproducible.
func SortVersions(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		if versions[i].Number != versions[j].Number {
			return versions[i].Number < versions[j].Number
		}
		return versions[i].ID < versions[j].ID
	})
}
