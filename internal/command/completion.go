// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for refdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_refdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "vq eq dq mq serve completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    # Determine if an optional Root (first non-flag after subcommand) has
		# already been provided
    local have_root=0
    local idx=2
    while [[ $idx -lt ${#COMP_WORDS[@]} ]]; do
        local w=${COMP_WORDS[$idx]}
        if [[ $w != -* ]]; then
            have_root=1
            break
        fi
        ((idx++))
    done

    case "$cmd" in
    vq)
      local opts="$common --schema --prefix --passphrase -p"
            ;;
        eq)
      local opts="$common --schema --prefix --passphrase -p --rv"
            ;;
        dq)
            local opts="--color -c --entry -e --output -o --pick --rv --passphrase -p --tldr"
            ;;
        mq)
      local opts="$common --diff --diff_filter --prefix --passphrase -p --rv"
            ;;
        serve)
            local opts="--addr --passphrase -p --tldr"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        if [[ "$cmd" == "dq" ]]; then
            COMPREPLY=( $(compgen -W "text html json yaml" -- "$cur") )
        else
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        fi
        return 0
    fi

  # If current token starts with '-', or we've already consumed Root, offer flags
  if [[ "$cur" == -* || $have_root -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise, we're on the (optional) Root positional — complete directories
  COMPREPLY=( $(compgen -o dirnames -- "$cur") )
  return 0
}

complete -F _refdiff refdiff
`

const zshCompletionScript = `#compdef refdiff

_refdiff() {
  local -a cmds
  cmds=(
    'vq:version query'
    'eq:entry query'
    'dq:diff query'
    'mq:manifest query'
    'serve:serve the web UI'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'refdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    vq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--prefix[version id prefix]' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '::Root:_directories'
      ;;
    eq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--prefix[version id prefix]' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '--rv[version to query]' \
        '::Root:_directories'
      ;;
    dq)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-e --entry)'{-e,--entry}'[only show this entry]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text html json yaml)' \
        '--pick[pick versions interactively]' \
        '--rv[version to compare]' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '::Root:_directories'
      ;;
    mq)
      _arguments -C \
        $common \
        '--diff[find structural differences between versions]' \
        '--diff_filter[filter for diff results]' \
        '--prefix[version id prefix]' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '--rv[version to query]' \
        '::Root:_directories'
      ;;
    serve)
      _arguments -C \
        '--addr[listen address]' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '::Root:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _refdiff refdiff refdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: refdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "refdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
