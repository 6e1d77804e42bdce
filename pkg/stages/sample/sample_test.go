// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package sample_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/stages/sample"
	"github.com/transpaer/condenser/pkg/storage"
)

func buildStore(t *testing.T) *storage.AppStore {
	t.Helper()
	dbStore, err := storage.InitStore(context.Background(), storage.Config{Directory: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { dbStore.Close() })
	app := storage.NewAppStore(dbStore)

	productId := ids.ProductIdFromGtin(ids.NewGtin(2345))
	require.NoError(t, app.Products.Put(productId, model.Product{
		Names:      []model.Text{{Text: "Widget", Source: model.SourceWikidata}},
		Categories: []model.Text{{Text: "Electronics", Source: model.SourceWikidata}},
	}))
	require.NoError(t, app.ProductByGtin.Put(storage.StringKey("2345"), productId))

	return app
}

func TestRun_AllProbesPass(t *testing.T) {
	app := buildStore(t)
	probes := []sample.Probe{
		{Lookup: sample.LookupProductGtin, Key: "2345", Expect: sample.FieldName},
		{Lookup: sample.LookupProductGtin, Key: "2345", Expect: sample.FieldCategory},
	}

	result, err := sample.Run(context.Background(), probes, app)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Passed)
	assert.Equal(t, 0, result.Failed)
}

func TestRun_UnknownKeyFails(t *testing.T) {
	app := buildStore(t)
	probes := []sample.Probe{
		{Lookup: sample.LookupProductGtin, Key: "does-not-exist", Expect: sample.FieldName},
	}

	result, err := sample.Run(context.Background(), probes, app)
	assert.Error(t, err)
	assert.Equal(t, 1, result.Failed)
}

func TestLoadProbes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- lookup: product_gtin
  key: "2345"
  expect: name
`), 0o644))

	probes, err := sample.LoadProbes(path)
	require.NoError(t, err)
	require.Len(t, probes, 1)
	assert.Equal(t, sample.LookupProductGtin, probes[0].Lookup)
	assert.Equal(t, "2345", probes[0].Key)
}
