// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/model"
)

func TestMergeRegions_WorldAbsorbsEverything(t *testing.T) {
	assert.Equal(t, model.World(), model.MergeRegions(model.World(), model.RegionList("PL", "DE")))
	assert.Equal(t, model.World(), model.MergeRegions(model.RegionList("PL"), model.World()))
	assert.Equal(t, model.World(), model.MergeRegions(model.World(), model.UnknownRegions()))
}

func TestMergeRegions_UnknownYieldsOther(t *testing.T) {
	list := model.RegionList("PL", "DE")
	assert.Equal(t, list, model.MergeRegions(model.UnknownRegions(), list))
	assert.Equal(t, list, model.MergeRegions(list, model.UnknownRegions()))
	assert.Equal(t, model.UnknownRegions(), model.MergeRegions(model.UnknownRegions(), model.UnknownRegions()))
}

func TestMergeRegions_ListsUnion(t *testing.T) {
	merged := model.MergeRegions(model.RegionList("PL", "DE"), model.RegionList("DE", "FR"))
	assert.Equal(t, []string{"DE", "FR", "PL"}, merged.Sorted())
}

func TestRegions_MarshalJSON_SortsCodes(t *testing.T) {
	r := model.RegionList("FR", "DE", "PL")
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"list","codes":["DE","FR","PL"]}`, string(out))
}

func TestRegions_JSONRoundTrip(t *testing.T) {
	for _, r := range []model.Regions{model.World(), model.UnknownRegions(), model.RegionList("PL")} {
		data, err := json.Marshal(r)
		require.NoError(t, err)

		var got model.Regions
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, r.Kind, got.Kind)
		assert.Equal(t, r.Sorted(), got.Sorted())
	}
}
