// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package substrate_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/substrate"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiki.jsonl")

	w, err := substrate.CreateWriter(path)
	require.NoError(t, err)

	records := []model.SubstrateRecord{
		{InnerId: "Q1", Kind: model.KindProducer, Regions: model.UnknownRegions()},
		{InnerId: "Q2", Kind: model.KindProduct, Regions: model.World()},
	}
	for _, rec := range records {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	r, err := substrate.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var got []model.SubstrateRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, rec)
	}

	require.Len(t, got, 2)
	assert.Equal(t, "Q1", got[0].InnerId)
	assert.Equal(t, model.KindProduct, got[1].Kind)
	assert.Equal(t, model.RegionsWorld, got[1].Regions.Kind)
}
