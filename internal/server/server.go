// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/refdiff/refdiff/internal/annotate"
	"github.com/refdiff/refdiff/internal/compare"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/log"
	"github.com/refdiff/refdiff/internal/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// insufficientSelection is the body of the 400 response when fewer than two
// versions are submitted for comparison.
const insufficientSelection = "Please select at least two versions for comparison."

// Server is the web UI: an index page listing available versions and a
// compare endpoint rendering highlighted differences. Corpora are loaded per
// request so a long-running server picks up store changes.
type Server struct {
	Store store.Store

	templates *template.Template
}

// NewServer parses the embedded templates and binds the store.
func NewServer(st store.Store) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{Store: st, templates: tmpl}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /compare", s.handleCompare)
	return mux
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("listening on %s, corpus root %s", addr, s.Store)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	versions, err := s.Store.Versions(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list versions")
		http.Error(w, "failed to list versions", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html.tmpl", struct {
		Versions []corpus.Version
	}{Versions: versions})
}

// compareEntry is one differing entry on the compare page, with the rendered
// (already-escaped) fragment for each selected version.
type compareEntry struct {
	Name     string
	Rendered []template.HTML
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	selected := r.PostForm["versions"]
	if len(selected) < 2 {
		http.Error(w, insufficientSelection, http.StatusBadRequest)
		return
	}

	corpora := make(map[string]corpus.Corpus, len(selected))
	for _, id := range selected {
		c, err := s.Store.Load(r.Context(), id)
		if err != nil {
			var nf corpus.NotFoundError
			if errors.As(err, &nf) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			log.WithError(err).Errorf("failed to load %s", id)
			http.Error(w, "failed to load corpus", http.StatusInternalServerError)
			return
		}
		corpora[id] = c
	}

	result, err := compare.Compare(selected, corpora, annotate.HTMLRenderer{})
	if err != nil {
		if errors.Is(err, compare.ErrInsufficientSelection) {
			http.Error(w, insufficientSelection, http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("comparison failed")
		http.Error(w, "comparison failed", http.StatusInternalServerError)
		return
	}

	entries := make([]compareEntry, 0, len(result))
	for _, name := range sortedNames(result) {
		entry := compareEntry{Name: name}
		for _, id := range selected {
			// Renderer output is escaped HTML already.
			entry.Rendered = append(entry.Rendered, template.HTML(result[name][id])) //nolint:gosec
		}
		entries = append(entries, entry)
	}

	s.render(w, "compare.html.tmpl", struct {
		Versions []string
		Entries  []compareEntry
	}{Versions: selected, Entries: entries})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).Errorf("failed to render %s", name)
	}
}

func sortedNames(result compare.Result) []string {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	// Entries render in lexicographic order, same as the comparison pass.
	sort.Strings(names)
	return names
}
