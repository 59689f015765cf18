// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"strings"

	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/store/local"
	"github.com/refdiff/refdiff/internal/store/s3"
)

// Store abstracts where corpora live. Implementations return independent
// Corpus copies per Load call; callers never share loaded corpora across
// requests.
type Store interface {
	// Versions lists the available corpus versions, ascending by their
	// numeric version component.
	Versions(ctx context.Context) ([]corpus.Version, error)
	// Load reads the full corpus for one version id. Returns
	// corpus.NotFoundError if the id has no corpus, corpus.IOError if an
	// individual entry cannot be read.
	Load(ctx context.Context, id string) (corpus.Corpus, error)
	String() string
}

// New returns the Store implementation for the given corpus root: s3 for
// s3://bucket/prefix roots, local filesystem for everything else.
func New(ctx context.Context, root string, passphrase corpus.PassphraseFunc) (Store, error) {
	if strings.HasPrefix(root, "s3://") {
		return s3.NewStoreS3(ctx, root, passphrase)
	}
	return local.NewStoreLocal(root, passphrase)
}
