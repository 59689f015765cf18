// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/refdiff/refdiff/internal/corpus"
)

// StoreLocal serves corpora from a directory tree of the shape
//
//	<root>/postgres_9.6/ABORT.txt
//	<root>/postgres_10/ABORT.txt
//	<root>/postgres_11.json          (packed snapshot)
//	<root>/postgres_12.json.enc      (encrypted packed snapshot)
//
// Directory names (and snapshot basenames) are the version ids; each *.txt
// file inside a version directory is one entry, named by its basename.
type StoreLocal struct {
	Root       string
	Passphrase corpus.PassphraseFunc
}

// NewStoreLocal constructs a local store rooted at the given directory.
func NewStoreLocal(root string, passphrase corpus.PassphraseFunc) (*StoreLocal, error) {
	if fi, err := os.Stat(root); err != nil {
		return nil, err
	} else if !fi.IsDir() {
		return nil, os.ErrInvalid
	}
	return &StoreLocal{Root: root, Passphrase: passphrase}, nil
}

// Versions implements store.Store. Root entries without a parseable numeric
// suffix are skipped rather than failing the whole scan.
func (st *StoreLocal) Versions(ctx context.Context) ([]corpus.Version, error) {
	dirents, err := os.ReadDir(st.Root)
	if err != nil {
		return nil, err
	}

	var versions []corpus.Version
	for _, de := range dirents {
		id := de.Name()
		if !de.IsDir() {
			id = snapshotID(id)
			if id == "" {
				continue
			}
		}

		number, err := corpus.ParseNumber(id)
		if err != nil {
			log.Debugf("skipping %s: %v", de.Name(), err)
			continue
		}

		v := corpus.Version{ID: id, Number: number}
		if info, err := de.Info(); err == nil {
			v.Updated = info.ModTime()
		}
		if de.IsDir() {
			// Entry count comes cheap for directories. Snapshots would need a
			// full unpack (and possibly a passphrase), so they report zero.
			entries, err := filepath.Glob(filepath.Join(st.Root, id, "*.txt"))
			if err == nil {
				v.Entries = len(entries)
			}
		}

		versions = append(versions, v)
	}

	corpus.SortVersions(versions)
	return versions, nil
}

// Load implements store.Store. A version directory wins over a packed
// snapshot of the same id.
func (st *StoreLocal) Load(ctx context.Context, id string) (corpus.Corpus, error) {
	dir := filepath.Join(st.Root, id)
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return st.loadDir(id, dir)
	}

	for _, ext := range []string{".json", ".json.enc"} {
		path := dir + ext
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, corpus.IOError{ID: id, Entry: filepath.Base(path), Err: err}
		}
		return corpus.UnpackSnapshot(data, st.Passphrase)
	}

	return nil, corpus.NotFoundError{ID: id}
}

func (st *StoreLocal) String() string {
	return st.Root
}

func (st *StoreLocal) loadDir(id, dir string) (corpus.Corpus, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, corpus.IOError{ID: id, Err: err}
	}

	c := corpus.Corpus{}
	for _, f := range files {
		body, err := os.ReadFile(f)
		if err != nil {
			return nil, corpus.IOError{ID: id, Entry: filepath.Base(f), Err: err}
		}
		name := strings.TrimSuffix(filepath.Base(f), ".txt")
		c[name] = string(body)
	}

	return c, nil
}

// snapshotID strips a snapshot extension from a filename, returning "" for
// files that are not snapshots.
func snapshotID(name string) string {
	switch {
	case strings.HasSuffix(name, ".json.enc"):
		return strings.TrimSuffix(name, ".json.enc")
	case strings.HasSuffix(name, ".json"):
		return strings.TrimSuffix(name, ".json")
	default:
		return ""
	}
}
