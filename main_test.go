// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refdiff/refdiff/internal/config"
)

func TestHandleVersion(t *testing.T) {
	assert.True(t, handleVersion([]string{"refdiff", "--version"}))
	assert.True(t, handleVersion([]string{"refdiff", "-v"}))
	assert.False(t, handleVersion([]string{"refdiff", "vq"}))
}

func TestHandleNakedCommand(t *testing.T) {
	args := handleNakedCommand([]string{"refdiff"})
	assert.Equal(t, []string{"refdiff", "--help"}, args)

	args = handleNakedCommand([]string{"refdiff", "vq"})
	assert.Equal(t, []string{"refdiff", "vq"}, args)
}

func TestProcessCommandArgsCompletionPassthrough(t *testing.T) {
	args := []string{"refdiff", "completion", "bash"}
	assert.Equal(t, args, processCommandArgs(args))
}

func TestProcessSetOnlyExpandsSet(t *testing.T) {
	config.Config = config.Type{
		Source: "test",
		Data: map[string]interface{}{
			"vq": map[string]interface{}{
				"wide": []interface{}{"--titles", "--attrs id,number,entries,updated"},
			},
		},
	}
	t.Cleanup(func() { config.Config = config.Type{} })

	args := processSetOnly([]string{"refdiff", "vq", "@wide", "--color"})
	assert.Equal(t, []string{"refdiff", "vq", "--titles", "--attrs", "id,number,entries,updated", "--color"}, args)
}

func TestProcessSetOnlyNoSet(t *testing.T) {
	args := []string{"refdiff", "vq", "--color"}
	assert.Equal(t, args, processSetOnly(args))
}
