// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/refdiff/refdiff/internal/annotate"
	"github.com/refdiff/refdiff/internal/compare"
	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/differ"
	"github.com/refdiff/refdiff/internal/meta"
	"github.com/refdiff/refdiff/internal/store"
)

// dqCommandAction is the action handler for the "dq" subcommand. It loads the
// selected corpus versions, runs the line comparison across them, and writes
// the annotated differences in the requested format.
func dqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "dq") {
		return nil
	}

	config.Config.Namespace = "dq"

	st, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	ids, err := selectDiffVersions(ctx, cmd, st)
	if err != nil {
		return err
	}
	if ids == nil {
		// Picker was dismissed.
		return nil
	}
	log.Debugf("versions: %v", ids)

	corpora := make(map[string]corpus.Corpus, len(ids))
	for _, id := range ids {
		c, loadErr := st.Load(ctx, id)
		if loadErr != nil {
			return loadErr
		}
		corpora[id] = c
	}

	var renderer annotate.Renderer
	if cmd.String("output") == "html" {
		renderer = annotate.HTMLRenderer{}
	} else {
		renderer = annotate.TermRenderer{Color: cmd.Bool("color")}
	}

	result, err := compare.Compare(ids, corpora, renderer)
	if err != nil {
		return err
	}

	if entry := cmd.String("entry"); entry != "" {
		if per, ok := result[entry]; ok {
			result = compare.Result{entry: per}
		} else {
			result = compare.Result{}
		}
	}

	return writeDiffResult(cmd, ids, result)
}

// selectDiffVersions turns the --rv specs (or the --pick TUI) into version
// ids. A nil, nil return means the user dismissed the picker.
func selectDiffVersions(ctx context.Context, cmd *cli.Command, st store.Store) ([]string, error) {
	versions, err := st.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	if cmd.Bool("pick") {
		picked := differ.SelectVersions(versions)
		if len(picked) == 0 {
			return nil, nil
		}
		ids := make([]string, 0, len(picked))
		for _, v := range picked {
			ids = append(ids, v.ID)
		}
		return ids, nil
	}

	specs := cmd.StringSlice("rv")
	if len(specs) == 0 {
		specs = []string{"~1", "~0"}
	}

	return store.Resolve(versions, specs...)
}

// writeDiffResult renders the comparison result per the --output flag.
func writeDiffResult(cmd *cli.Command, ids []string, result compare.Result) error {
	switch cmd.String("output") {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(map[string]map[string]string(result))
		if err != nil {
			return err
		}
		_, _ = os.Stdout.Write(data)
		return nil
	case "html":
		for _, name := range sortedEntries(result) {
			fmt.Fprintf(os.Stdout, "<h2>%s</h2>\n", name)
			for _, id := range ids {
				fmt.Fprintf(os.Stdout, "<h3>%s</h3>\n%s\n", id, result[name][id])
			}
		}
		return nil
	default:
		if len(result) == 0 {
			fmt.Fprintln(os.Stdout, "No differences found.")
			return nil
		}
		for _, name := range sortedEntries(result) {
			fmt.Fprintf(os.Stdout, "== %s ==\n", name)
			for _, id := range ids {
				fmt.Fprintf(os.Stdout, "-- %s --\n%s", id, result[name][id])
			}
			fmt.Fprintln(os.Stdout)
		}
		return nil
	}
}

func sortedEntries(result compare.Result) []string {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dqCommandBuilder constructs the cli.Command for "dq", wiring metadata,
// flags, and action handlers.
func dqCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "dq",
		Usage:     "diff query",
		UsageText: "refdiff dq [Root] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output",
				Value:   false,
			},
			&cli.StringFlag{
				Name:    "entry",
				Aliases: []string{"e"},
				Usage:   "only show differences for this entry",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format",
				Value:   "text",
				Validator: func(value string) error {
					return FlagValidators(value, DiffOutputValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "pick",
				Usage:       "pick the versions interactively",
				HideDefault: true,
			},
			&cli.StringSliceFlag{
				Name:  "rv",
				Usage: "versions to compare (id, number, or ~N); repeatable",
			},
			passphraseFlag,
			tldrFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: dqCommandAction,
	}
}
