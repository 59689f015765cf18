// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/meta"
	"github.com/refdiff/refdiff/internal/server"
)

// serveCommandAction is the action handler for the "serve" subcommand. It
// starts the web UI against the configured corpus root and blocks until the
// context is canceled.
func serveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "serve") {
		return nil
	}

	config.Config.Namespace = "serve"

	st, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(st)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx, cmd.String("addr"))
}

// serveCommandBuilder constructs the cli.Command for "serve", wiring metadata,
// flags, and action handlers.
func serveCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "serve the web UI",
		UsageText: "refdiff serve [Root] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewAddrFlag("serve", meta.Config.Source),
			passphraseFlag,
			tldrFlag,
		},
		Action: serveCommandAction,
	}
}
