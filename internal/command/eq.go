// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/diff"
	"github.com/refdiff/refdiff/internal/meta"
)

// Entry is one row of eq output: a single reference entry of one version.
type Entry struct {
	Version string `attr:"version" json:"version" yaml:"version"`
	Name    string `attr:"name" json:"name" yaml:"name"`
	Lines   int    `attr:"lines" json:"lines" yaml:"lines"`
	Bytes   int    `attr:"bytes" json:"bytes" yaml:"bytes"`
}

// eqDefaultAttrs specifies the default attributes displayed for entries in
// the "eq" command output.
var eqDefaultAttrs = []string{"version", "name", "lines", "bytes"}

// eqCommandAction is the action handler for the "eq" subcommand. It lists the
// entries of the selected corpus versions, one row per version and entry, so
// presence across versions reads straight off the table. Supports
// --tldr/--schema shortcuts and emits results per common flags.
func eqCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "eq"

	fn := func(ctx context.Context, cmd *cli.Command) ([]Entry, error) {
		st, err := OpenStore(ctx, cmd)
		if err != nil {
			return nil, err
		}

		specs := cmd.StringSlice("rv")
		if len(specs) == 0 {
			specs = []string{"~0"}
		}
		ids, err := ResolveVersions(ctx, cmd, st, specs...)
		if err != nil {
			return nil, err
		}

		var rows []Entry
		for _, id := range ids {
			c, loadErr := st.Load(ctx, id)
			if loadErr != nil {
				return nil, loadErr
			}
			for name, text := range c {
				rows = append(rows, Entry{
					Version: id,
					Name:    name,
					Lines:   len(diff.Lines(text)),
					Bytes:   len(text),
				})
			}
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Name != rows[j].Name {
				return rows[i].Name < rows[j].Name
			}
			return rows[i].Version < rows[j].Version
		})

		return rows, nil
	}

	return NewQueryActionRunner(
		"eq",
		reflect.TypeOf(Entry{}),
		eqDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// eqCommandBuilder constructs the cli.Command for "eq", wiring metadata,
// flags, and action handlers.
func eqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "eq",
		Usage:     "entry query",
		UsageText: "refdiff eq [Root] [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "rv",
				Usage: "version(s) to query (id, number, or ~N); repeatable",
			},
			NewPrefixFlag("eq", meta.Config.Source),
			passphraseFlag,
		},
		Action: eqCommandAction,
		Meta:   meta,
	}).Build()
}
