// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/meta"
)

// vqDefaultAttrs specifies the default attributes displayed for corpus
// versions in the "vq" command output.
var vqDefaultAttrs = []string{"id", "number", "entries", "updated"}

// vqCommandAction is the action handler for the "vq" subcommand. It lists the
// corpus versions available under the root, supports --tldr/--schema
// shortcuts, and emits results per common flags.
func vqCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "vq"

	fn := func(ctx context.Context, cmd *cli.Command) ([]corpus.Version, error) {
		st, err := OpenStore(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return ListVersions(ctx, cmd, st)
	}

	return NewQueryActionRunner(
		"vq",
		reflect.TypeOf(corpus.Version{}),
		vqDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// vqCommandBuilder constructs the cli.Command for "vq", wiring metadata,
// flags, and action handlers.
func vqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "vq",
		Usage:     "version query",
		UsageText: "refdiff vq [Root] [options]",
		Flags: []cli.Flag{
			NewPrefixFlag("vq", meta.Config.Source),
			passphraseFlag,
		},
		Action: vqCommandAction,
		Meta:   meta,
	}).Build()
}
