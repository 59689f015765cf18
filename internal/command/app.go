// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/meta"
	"github.com/refdiff/refdiff/internal/util"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the refdiff
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load() //nolint
	cfg.Namespace = ns
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	// See if the arg immediately following the command might be a corpus root.
	// This is determined by whether or not it begins with - or --. If it does,
	// it's a flag and the root falls back to REFDIFF_ROOT, the config file, and
	// finally the starting directory. Special-case the 'completion' command
	// which takes a plain positional argument ('bash' or 'zsh').
	if ns != "completion" && len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		root, err := util.ParseRoot(args[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse corpus root (%s): %w", args[2], err)
		}
		m.Root = root
	} else {
		m.Root = defaultRoot(sd)
	}

	app := &cli.Command{
		Name:  "refdiff",
		Usage: "Reference manual diff",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "refdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		vqCommandBuilder(m),
		eqCommandBuilder(m),
		dqCommandBuilder(m),
		mqCommandBuilder(m),
		serveCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// defaultRoot resolves the corpus root when none was given on the command
// line: REFDIFF_ROOT first, then the root config key, then the starting
// directory.
func defaultRoot(startingDir string) string {
	if env := os.Getenv("REFDIFF_ROOT"); env != "" {
		if root, err := util.ParseRoot(env); err == nil {
			return root
		}
	}
	if cfgRoot, err := config.GetString("root"); err == nil && cfgRoot != "" {
		if root, err := util.ParseRoot(cfgRoot); err == nil {
			return root
		}
	}
	return startingDir
}
