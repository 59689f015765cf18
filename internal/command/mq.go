// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/diff"
	"github.com/refdiff/refdiff/internal/differ"
	"github.com/refdiff/refdiff/internal/meta"
	"github.com/refdiff/refdiff/internal/store"
)

// Manifest is the structural summary of one corpus version: every entry with
// its line and byte counts. Two manifests diffed against each other show
// which entries appeared, vanished, or changed shape between versions.
type Manifest struct {
	ID      string                   `json:"id"`
	Number  float64                  `json:"number"`
	Entries map[string]ManifestEntry `json:"entries"`
}

// ManifestEntry carries the per-entry counts inside a Manifest.
type ManifestEntry struct {
	Lines int `json:"lines"`
	Bytes int `json:"bytes"`
}

// mqCommandAction is the action handler for the "mq" subcommand. It builds
// the manifest of one corpus version, or with --diff the structural diff
// between two versions' manifests.
func mqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "mq") {
		return nil
	}

	config.Config.Namespace = "mq"

	st, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("diff") {
		return diffManifests(ctx, cmd, st)
	}

	spec := "~0"
	if specs := cmd.StringSlice("rv"); len(specs) > 0 {
		spec = specs[0]
	}
	ids, err := ResolveVersions(ctx, cmd, st, spec)
	if err != nil {
		return err
	}

	manifest, err := buildManifest(ctx, st, ids[0])
	if err != nil {
		return err
	}

	switch cmd.String("output") {
	case "yaml":
		data, yerr := yaml.Marshal(manifestForYAML(manifest))
		if yerr != nil {
			return yerr
		}
		_, _ = os.Stdout.Write(data)
	default:
		data, jerr := json.MarshalIndent(manifest, "", "  ")
		if jerr != nil {
			return jerr
		}
		fmt.Fprintln(os.Stdout, string(data))
	}

	return nil
}

// diffManifests resolves the two --rv specs, builds both manifests and hands
// them to the structural differ.
func diffManifests(ctx context.Context, cmd *cli.Command, st store.Store) error {
	specs := cmd.StringSlice("rv")
	switch len(specs) {
	case 0:
		specs = []string{"~1", "~0"}
	case 1:
		specs = append(specs, "~0")
	}

	versions, err := ListVersions(ctx, cmd, st)
	if err != nil {
		return err
	}
	ids, err := store.Resolve(versions, specs[0], specs[1])
	if err != nil {
		return err
	}

	docs := make([][]byte, 0, 2)
	for _, id := range ids {
		manifest, merr := buildManifest(ctx, st, id)
		if merr != nil {
			return merr
		}
		data, jerr := json.Marshal(manifest)
		if jerr != nil {
			return jerr
		}
		docs = append(docs, data)
	}

	return differ.Diff(ctx, cmd, docs)
}

// buildManifest loads one version and summarizes its entries.
func buildManifest(ctx context.Context, st store.Store, id string) (Manifest, error) {
	c, err := st.Load(ctx, id)
	if err != nil {
		return Manifest{}, err
	}

	number, _ := corpus.ParseNumber(id)
	manifest := Manifest{
		ID:      id,
		Number:  number,
		Entries: make(map[string]ManifestEntry, len(c)),
	}
	for name, text := range c {
		manifest.Entries[name] = ManifestEntry{
			Lines: len(diff.Lines(text)),
			Bytes: len(text),
		}
	}

	return manifest, nil
}

// manifestForYAML rebuilds the manifest with plain maps, since yaml.v2 cannot
// marshal the json-tagged struct with the right key casing.
func manifestForYAML(m Manifest) map[string]interface{} {
	entries := make(map[string]interface{}, len(m.Entries))
	for name, e := range m.Entries {
		entries[name] = map[string]interface{}{"lines": e.Lines, "bytes": e.Bytes}
	}
	return map[string]interface{}{
		"id":      m.ID,
		"number":  m.Number,
		"entries": entries,
	}
}

// mqCommandBuilder constructs the cli.Command for "mq", wiring metadata,
// flags, and action handlers.
func mqCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "mq",
		Usage:     "manifest query",
		UsageText: "refdiff mq [Root] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "find structural differences between two versions",
				Value: false,
			},
			&cli.StringFlag{
				Name:   "diff_filter",
				Hidden: true,
				Value:  "",
			},
			&cli.StringSliceFlag{
				Name:  "rv",
				Usage: "version(s) to query (id, number, or ~N); repeatable",
			},
			NewPrefixFlag("mq", meta.Config.Source),
			passphraseFlag,
			tldrFlag,
		}, NewGlobalFlags("mq")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: mqCommandAction,
	}
}
