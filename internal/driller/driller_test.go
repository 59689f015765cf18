// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const doc = `{
	"id": "postgres_10",
	"meta": {"entries": 2},
	"tags": ["stable", "lts"],
	"single": [{"name": "only"}]
}`

func TestDrillerSimpleKey(t *testing.T) {
	assert.Equal(t, "postgres_10", Driller(doc, "id").String())
}

func TestDrillerNestedKey(t *testing.T) {
	assert.Equal(t, int64(2), Driller(doc, "meta.entries").Int())
}

func TestDrillerArrayIndex(t *testing.T) {
	assert.Equal(t, "lts", Driller(doc, "tags[1]").String())
}

func TestDrillerSingleElementArrayUnwraps(t *testing.T) {
	assert.Equal(t, "only", Driller(doc, "single.name").String())
}

func TestDrillerMissingAndInvalid(t *testing.T) {
	assert.False(t, Driller(doc, "nope").Exists())
	assert.False(t, Driller(doc, "tags[9]").Exists())
	assert.False(t, Driller(doc, "bad key!").Exists())
}
