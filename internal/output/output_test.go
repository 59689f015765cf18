// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/refdiff/refdiff/internal/attrs"
	"github.com/refdiff/refdiff/internal/corpus"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"id": "postgres_11", "number": 11.0, "entries": 150.0},
		{"id": "postgres_9.6", "number": 9.6, "entries": 120.0},
		{"id": "postgres_10", "number": 10.0, "entries": 140.0},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by id",
			spec:      "id",
			wantOrder: []string{"postgres_10", "postgres_11", "postgres_9.6"},
		},
		{
			name:      "ascending by number keeps fractions apart",
			spec:      "number",
			wantOrder: []string{"postgres_9.6", "postgres_10", "postgres_11"},
		},
		{
			name:      "descending by number",
			spec:      "-number",
			wantOrder: []string{"postgres_11", "postgres_10", "postgres_9.6"},
		},
		{
			name:      "descending by entries",
			spec:      "-entries",
			wantOrder: []string{"postgres_11", "postgres_10", "postgres_9.6"},
		},
		{
			name:      "multiple fields",
			spec:      "entries,id",
			wantOrder: []string{"postgres_9.6", "postgres_10", "postgres_11"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"postgres_11", "postgres_9.6", "postgres_10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedID := range tt.wantOrder {
				assert.Equal(t, expectedID, data[i]["id"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "string",
			value: "hello",
			want:  "hello",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "whole float64",
			value: 42.0,
			want:  "42",
		},
		{
			name:  "fractional float64 keeps its fraction",
			value: 9.6,
			want:  "9.6",
		},
		{
			name:  "bool true",
			value: true,
			want:  "true",
		},
		{
			name:  "nil default",
			value: nil,
			want:  "",
		},
		{
			name:     "nil custom",
			value:    nil,
			emptyVal: "-",
			want:     "-",
		},
		{
			name:  "slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "map",
			value: map[string]int{"x": 1},
			want:  `{"x":1}`,
		},
		{
			name:     "zero value with custom empty",
			value:    0,
			emptyVal: "N/A",
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		h    string
		s    string
		want schemaTag
	}{
		{
			name: "simple attr",
			s:    "id",
			want: schemaTag{Kind: "attr", Name: "id"},
		},
		{
			name: "with holder",
			h:    "version",
			s:    "id",
			want: schemaTag{Kind: "attr", Name: "version.id"},
		},
		{
			name: "empty string",
			s:    "",
			want: schemaTag{Kind: "attr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTag(tt.h, tt.s)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDumpSchemaVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	DumpSchema("", reflect.TypeOf(corpus.Version{}), buf)

	out := buf.String()
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "number")
	assert.Contains(t, out, "entries")
	assert.Contains(t, out, "updated")
}

func emitCommand(output string, filter ...string) *cli.Command {
	filterValue := ""
	if len(filter) > 0 {
		filterValue = filter[0]
	}
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: output},
			&cli.StringFlag{Name: "filter", Value: filterValue},
			&cli.StringFlag{Name: "sort", Value: "number"},
			&cli.BoolFlag{Name: "local"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles", Value: true},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
	}
	cmd.Metadata = make(map[string]interface{})
	return cmd
}

func versionDataset(t *testing.T) bytes.Buffer {
	t.Helper()
	versions := []corpus.Version{
		{ID: "postgres_10", Number: 10, Entries: 140, Updated: time.Now()},
		{ID: "postgres_9.6", Number: 9.6, Entries: 120, Updated: time.Now()},
	}
	data, err := json.Marshal(versions)
	require.NoError(t, err)
	return *bytes.NewBuffer(data)
}

func TestEmitRawDumpsInput(t *testing.T) {
	var a attrs.AttrList
	require.NoError(t, a.Set("id"))

	raw := versionDataset(t)
	want := raw.String()

	buf := new(bytes.Buffer)
	Emit(raw, a, emitCommand("raw"), buf, nil)

	assert.Equal(t, want, buf.String())
}

func TestEmitJSON(t *testing.T) {
	var a attrs.AttrList
	require.NoError(t, a.Set("id,number"))

	buf := new(bytes.Buffer)
	Emit(versionDataset(t), a, emitCommand("json"), buf, nil)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)

	// Sorted by number ascending, so 9.6 first.
	assert.Equal(t, "postgres_9.6", rows[0]["id"])
	assert.Equal(t, "postgres_10", rows[1]["id"])
}

func TestEmitTextTable(t *testing.T) {
	var a attrs.AttrList
	require.NoError(t, a.Set("id,entries"))

	buf := new(bytes.Buffer)
	Emit(versionDataset(t), a, emitCommand("text"), buf, nil)

	out := buf.String()
	assert.Contains(t, out, "postgres_9.6")
	assert.Contains(t, out, "postgres_10")
	assert.Contains(t, out, "140")
}

func TestEmitFilterApplied(t *testing.T) {
	var a attrs.AttrList
	require.NoError(t, a.Set("id,number"))

	cmd := emitCommand("json", "id=postgres_10")

	buf := new(bytes.Buffer)
	Emit(versionDataset(t), a, cmd, buf, nil)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "postgres_10", rows[0]["id"])
}

func TestTableWriterEmptyResultSet(t *testing.T) {
	buf := new(bytes.Buffer)
	TableWriter(nil, attrs.AttrList{}, emitCommand("text"), buf)
	assert.Empty(t, buf.String())
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
