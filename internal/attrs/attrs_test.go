// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSingleSpec(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set("id"))

	require.Len(t, a, 1)
	assert.Equal(t, "id", a[0].Key)
	assert.Equal(t, "id", a[0].OutputKey)
	assert.True(t, a[0].Include)
}

func TestSetOutputKeyAndTransform(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set("updated:when:T"))

	require.Len(t, a, 1)
	assert.Equal(t, "updated", a[0].Key)
	assert.Equal(t, "when", a[0].OutputKey)
	assert.Equal(t, "T", a[0].TransformSpec)
}

func TestSetExcludedAttr(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set("!number"))

	require.Len(t, a, 1)
	assert.False(t, a[0].Include)
	assert.Equal(t, "number", a[0].Key)
}

func TestSetUpdatesExistingAttr(t *testing.T) {
	a := AttrList{{Key: "id", OutputKey: "id", Include: true}}
	require.NoError(t, a.Set("id:version:u"))

	require.Len(t, a, 1)
	assert.Equal(t, "version", a[0].OutputKey)
	assert.Equal(t, "u", a[0].TransformSpec)
}

func TestSetEmptyAndStarAreNoops(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set(""))
	require.NoError(t, a.Set("*"))
	assert.Empty(t, a)
}

func TestSetGlobalTransformSpec(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set("id,entries,*::U"))
	require.NoError(t, a.SetGlobalTransformSpec())

	assert.Equal(t, "U,", a[0].TransformSpec)
	assert.Equal(t, "U,", a[1].TransformSpec)
}

func TestTransformCase(t *testing.T) {
	attr := Attr{TransformSpec: "u"}
	assert.Equal(t, "ABORT", attr.Transform("abort"))

	attr = Attr{TransformSpec: "U,l"}
	assert.Equal(t, "abort", attr.Transform("ABORT"))
}

func TestTransformTruncate(t *testing.T) {
	attr := Attr{TransformSpec: "4"}
	assert.Equal(t, "post", attr.Transform("postgres_10"))
}

func TestTransformMiddleEllipsis(t *testing.T) {
	attr := Attr{TransformSpec: "-8"}
	assert.Equal(t, "pos..e10", attr.Transform("postgres_really_large10"))
}

func TestTransformTimeAgo(t *testing.T) {
	attr := Attr{TransformSpec: "T"}
	stamp := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)

	out, ok := attr.Transform(stamp).(string)
	require.True(t, ok)
	assert.Contains(t, out, "ago")
}

func TestTransformPassesThroughNonStrings(t *testing.T) {
	attr := Attr{TransformSpec: "u"}
	assert.Equal(t, 42, attr.Transform(42))
	assert.Nil(t, attr.Transform(nil))
}
