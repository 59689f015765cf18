// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/attrs"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/meta"
	"github.com/refdiff/refdiff/internal/output"
	"github.com/refdiff/refdiff/internal/store"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested writes the attribute schema for the provided type to
// stdout when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t, nil)
		return true
	}
	return false
}

// EmitRows marshals a slice of result rows as JSON and passes it to the
// common output routine.
func EmitRows(results any, al attrs.AttrList, cmd *cli.Command) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	var raw bytes.Buffer
	raw.Write(data)
	output.Emit(raw, al, cmd, os.Stdout, nil)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// OpenStore builds the corpus store for the command's root, wiring the
// passphrase chain for encrypted snapshots.
func OpenStore(ctx context.Context, cmd *cli.Command) (store.Store, error) {
	m := GetMeta(cmd)
	passphrase := corpus.ResolvePassphrase(cmd.String("passphrase"))
	return store.New(ctx, m.Root, passphrase)
}

// ListVersions returns the store's versions, restricted to --prefix when one
// was given.
func ListVersions(ctx context.Context, cmd *cli.Command, st store.Store) ([]corpus.Version, error) {
	versions, err := st.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions in %s: %w", st, err)
	}

	if prefix := cmd.String("prefix"); prefix != "" {
		filtered := versions[:0]
		for _, v := range versions {
			if strings.HasPrefix(v.ID, prefix) {
				filtered = append(filtered, v)
			}
		}
		versions = filtered
	}

	return versions, nil
}

// ResolveVersions maps user version specs onto ids known to the store.
func ResolveVersions(ctx context.Context, cmd *cli.Command, st store.Store, specs ...string) ([]string, error) {
	versions, err := ListVersions(ctx, cmd, st)
	if err != nil {
		return nil, err
	}
	return store.Resolve(versions, specs...)
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr refdiff <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "refdiff", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
