// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package coagulate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/stages/coagulate"
	"github.com/transpaer/condenser/pkg/substrate"
)

func writeSubstrate(t *testing.T, dir, name string, recs ...model.SubstrateRecord) {
	t.Helper()
	w, err := substrate.CreateWriter(filepath.Join(dir, name+".jsonl"))
	require.NoError(t, err)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
}

func TestBuild_UnionsSharedWikiId(t *testing.T) {
	dir := t.TempDir()

	writeSubstrate(t, dir, "wiki", model.SubstrateRecord{
		InnerId: "Q1",
		Kind:    model.KindProducer,
		WikiIds: []model.Text{{Text: "Q1", Source: model.SourceWikidata}},
		Regions: model.UnknownRegions(),
	})
	writeSubstrate(t, dir, "bcorp", model.SubstrateRecord{
		InnerId: "bcorp:1",
		Kind:    model.KindProducer,
		WikiIds: []model.Text{{Text: "Q1", Source: model.SourceBCorp}},
		Regions: model.UnknownRegions(),
	})

	substrates, report, err := substrate.Prepare(dir)
	require.NoError(t, err)
	assert.True(t, report.Empty())

	c, err := coagulate.Build(substrates)
	require.NoError(t, err)

	wikiCanonical, ok := c.GetOrganisationId("wiki", "Q1", substrates)
	require.True(t, ok)
	bcorpCanonical, ok := c.GetOrganisationId("bcorp", "bcorp:1", substrates)
	require.True(t, ok)
	assert.Equal(t, wikiCanonical, bcorpCanonical)
	assert.Equal(t, "Q1", wikiCanonical.String())
}

func TestBuild_SeparatesUnrelatedRecords(t *testing.T) {
	dir := t.TempDir()

	writeSubstrate(t, dir, "wiki",
		model.SubstrateRecord{
			InnerId: "Q1",
			Kind:    model.KindProducer,
			WikiIds: []model.Text{{Text: "Q1", Source: model.SourceWikidata}},
			Regions: model.UnknownRegions(),
		},
		model.SubstrateRecord{
			InnerId: "Q2",
			Kind:    model.KindProduct,
			WikiIds: []model.Text{{Text: "Q2", Source: model.SourceWikidata}},
			Regions: model.UnknownRegions(),
		},
	)

	substrates, _, err := substrate.Prepare(dir)
	require.NoError(t, err)

	c, err := coagulate.Build(substrates)
	require.NoError(t, err)

	org, ok := c.GetOrganisationId("wiki", "Q1", substrates)
	require.True(t, ok)
	prod, ok := c.GetProductId("wiki", "Q2", substrates)
	require.True(t, ok)
	assert.Equal(t, "Q1", org.String())
	assert.Equal(t, "Q2", prod.String())

	_, ok = c.GetProductId("wiki", "Q1", substrates)
	assert.False(t, ok)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	writeSubstrate(t, dir, "wiki", model.SubstrateRecord{
		InnerId: "Q1",
		Kind:    model.KindProducer,
		WikiIds: []model.Text{{Text: "Q1", Source: model.SourceWikidata}},
		Regions: model.UnknownRegions(),
	})
	writeSubstrate(t, dir, "bcorp", model.SubstrateRecord{
		InnerId: "bcorp:1",
		Kind:    model.KindProducer,
		WikiIds: []model.Text{{Text: "Q1", Source: model.SourceBCorp}},
		Regions: model.UnknownRegions(),
	})

	substrates, _, err := substrate.Prepare(dir)
	require.NoError(t, err)

	c, err := coagulate.Build(substrates)
	require.NoError(t, err)

	mapPath := filepath.Join(dir, "coagulate.yaml")
	require.NoError(t, c.Save(mapPath, substrates))

	data, err := os.ReadFile(mapPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bcorp:1")

	loaded, err := coagulate.Load(mapPath, substrates)
	require.NoError(t, err)

	id, ok := loaded.GetOrganisationId("bcorp", "bcorp:1", substrates)
	require.True(t, ok)
	assert.Equal(t, "Q1", id.String())
}

func TestLoad_UnknownSubstrateNameIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeSubstrate(t, dir, "wiki", model.SubstrateRecord{
		InnerId: "Q1",
		Kind:    model.KindProducer,
		WikiIds: []model.Text{{Text: "Q1", Source: model.SourceWikidata}},
		Regions: model.UnknownRegions(),
	})
	substrates, _, err := substrate.Prepare(dir)
	require.NoError(t, err)

	mapPath := filepath.Join(dir, "coagulate.yaml")
	require.NoError(t, os.WriteFile(mapPath, []byte("producer:\n  \"Q1\":\n    - s: ghost\n      i: \"1\"\nproduct: {}\n"), 0o644))

	_, err = coagulate.Load(mapPath, substrates)
	assert.Error(t, err)
}
