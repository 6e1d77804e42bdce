// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package engine_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/engine"
)

func drainLines(t *testing.T, src engine.Source) []string {
	t.Helper()
	var lines []string
	for {
		msg, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, string(msg.([]byte)))
	}
	require.NoError(t, src.Close())
	return lines
}

func TestLineSource_PlainText(t *testing.T) {
	src := engine.NewLineSource(bytes.NewReader([]byte("one\ntwo\nthree\n")))
	assert.Equal(t, []string{"one", "two", "three"}, drainLines(t, src))
}

func TestOpenLineSource_ConcatenatedGzipMembers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.json.gz")

	f, err := os.Create(path)
	require.NoError(t, err)

	// Two independent gzip members concatenated into one file, the exact
	// shape of Wikidata's streamed graph dump.
	for _, line := range []string{"first\n", "second\n"} {
		gw := gzip.NewWriter(f)
		_, err := gw.Write([]byte(line))
		require.NoError(t, err)
		require.NoError(t, gw.Close())
	}
	require.NoError(t, f.Close())

	src, err := engine.OpenLineSource(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, drainLines(t, src))
}

func TestOpenLineSource_UnreadableFileReturnsError(t *testing.T) {
	_, err := engine.OpenLineSource(filepath.Join(t.TempDir(), "missing.json.gz"))
	assert.Error(t, err)
}

func TestCSVSource_SkipsHeaderAndYieldsRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,score\nAcme,10\nWidgetCo,20\n"), 0o644))

	src, header, err := engine.OpenCSVSource(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, header)

	var got [][]string
	for {
		msg, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, msg.([]string))
	}
	require.NoError(t, src.Close())

	assert.Equal(t, [][]string{{"Acme", "10"}, {"WidgetCo", "20"}}, got)
}
