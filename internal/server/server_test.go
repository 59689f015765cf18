// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdiff/refdiff/internal/corpus"
)

type fakeStore struct {
	corpora map[string]corpus.Corpus
}

func (f fakeStore) Versions(_ context.Context) ([]corpus.Version, error) {
	var versions []corpus.Version
	for id := range f.corpora {
		number, _ := corpus.ParseNumber(id)
		versions = append(versions, corpus.Version{
			ID:      id,
			Number:  number,
			Entries: len(f.corpora[id]),
			Updated: time.Now(),
		})
	}
	corpus.SortVersions(versions)
	return versions, nil
}

func (f fakeStore) Load(_ context.Context, id string) (corpus.Corpus, error) {
	c, ok := f.corpora[id]
	if !ok {
		return nil, corpus.NotFoundError{ID: id}
	}
	return c, nil
}

func (f fakeStore) String() string { return "fake" }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st := fakeStore{corpora: map[string]corpus.Corpus{
		"pg_9.6": {
			"analyze": "ANALYZE\ncollects statistics\n",
			"vacuum":  "VACUUM\nreclaims storage\n",
		},
		"pg_10": {
			"analyze": "ANALYZE\ncollects statistics\n",
			"vacuum":  "VACUUM\nreclaims storage\nand more\n",
		},
	}}

	srv, err := NewServer(st)
	require.NoError(t, err)
	return srv
}

func TestIndexListsVersions(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="pg_9.6"`)
	assert.Contains(t, body, `value="pg_10"`)
	// Ascending by number.
	assert.Less(t, strings.Index(body, "pg_9.6"), strings.Index(body, `value="pg_10"`))
}

func TestCompareRequiresTwoVersions(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"versions": []string{"pg_10"}}
	req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select at least two versions for comparison.")
}

func TestCompareDuplicateSelection(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"versions": []string{"pg_10", "pg_10"}}
	req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select at least two versions for comparison.")
}

func TestCompareRendersDifferences(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"versions": []string{"pg_9.6", "pg_10"}}
	req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// Only the differing entry shows up.
	assert.Contains(t, body, "<h2>vacuum</h2>")
	assert.NotContains(t, body, "<h2>analyze</h2>")

	// Highlight spans from the renderer survive template escaping.
	assert.Contains(t, body, `class="added"`)
	assert.Contains(t, body, "and more")
}

func TestCompareUnknownVersion(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"versions": []string{"pg_9.6", "pg_11"}}
	req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
