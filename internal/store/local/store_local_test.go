// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdiff/refdiff/internal/corpus"
)

func writeEntry(t *testing.T, root, id, name, body string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".txt"), []byte(body), 0o644))
}

func TestVersionsScansDirectoriesAndSnapshots(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "postgres_10", "ABORT", "abort docs\n")
	writeEntry(t, root, "postgres_10", "ANALYZE", "analyze docs\n")
	writeEntry(t, root, "postgres_9.6", "ABORT", "old abort docs\n")

	packed, err := json.Marshal(map[string]any{
		"entries": map[string]string{"ABORT": "packed abort docs\n"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres_11.json"), packed, 0o644))

	// Neither of these should survive the scan.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scratch"), 0o755))

	st, err := NewStoreLocal(root, nil)
	require.NoError(t, err)

	versions, err := st.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, versions, 3)

	// Ascending by numeric component, so 9.6 sorts before 10.
	assert.Equal(t, "postgres_9.6", versions[0].ID)
	assert.Equal(t, "postgres_10", versions[1].ID)
	assert.Equal(t, "postgres_11", versions[2].ID)

	assert.Equal(t, 1, versions[0].Entries)
	assert.Equal(t, 2, versions[1].Entries)
	assert.False(t, versions[1].Updated.IsZero())
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "postgres_10", "ABORT", "abort docs\n")
	writeEntry(t, root, "postgres_10", "ANALYZE", "analyze docs\n")

	st, err := NewStoreLocal(root, nil)
	require.NoError(t, err)

	c, err := st.Load(context.Background(), "postgres_10")
	require.NoError(t, err)
	assert.Equal(t, corpus.Corpus{
		"ABORT":   "abort docs\n",
		"ANALYZE": "analyze docs\n",
	}, c)
}

func TestLoadSnapshot(t *testing.T) {
	root := t.TempDir()
	packed, err := json.Marshal(map[string]any{
		"entries": map[string]string{"ABORT": "packed abort docs\n"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres_11.json"), packed, 0o644))

	st, err := NewStoreLocal(root, nil)
	require.NoError(t, err)

	c, err := st.Load(context.Background(), "postgres_11")
	require.NoError(t, err)
	assert.Equal(t, "packed abort docs\n", c["ABORT"])
}

func TestLoadDirectoryWinsOverSnapshot(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "postgres_10", "ABORT", "from directory\n")

	packed, err := json.Marshal(map[string]any{
		"entries": map[string]string{"ABORT": "from snapshot\n"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres_10.json"), packed, 0o644))

	st, err := NewStoreLocal(root, nil)
	require.NoError(t, err)

	c, err := st.Load(context.Background(), "postgres_10")
	require.NoError(t, err)
	assert.Equal(t, "from directory\n", c["ABORT"])
}

func TestLoadNotFound(t *testing.T) {
	st, err := NewStoreLocal(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = st.Load(context.Background(), "postgres_99")
	var nf corpus.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "postgres_99", nf.ID)
}

func TestNewStoreLocalRejectsMissingRoot(t *testing.T) {
	_, err := NewStoreLocal(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
