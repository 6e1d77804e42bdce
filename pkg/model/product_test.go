// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
)

func TestProduct_HasId(t *testing.T) {
	assert.False(t, model.Product{}.HasId())

	withId := model.Product{Ids: model.ProductIds{Gtins: []ids.Gtin{ids.NewGtin(1)}}}
	assert.True(t, withId.HasId())
}

func TestMergeProducts_UnionsIdsAndRegions(t *testing.T) {
	gtin, err := ids.ParseGtin("12345678")
	require.NoError(t, err)

	a := model.Product{
		Ids:     model.ProductIds{Gtins: []ids.Gtin{gtin}},
		Regions: model.RegionList("PL"),
	}
	b := model.Product{
		Ids:     model.ProductIds{Wiki: []ids.WikiId{ids.NewWikiId(7)}},
		Regions: model.RegionList("DE"),
	}

	merged := model.MergeProducts(a, b)

	assert.Equal(t, []ids.Gtin{gtin}, merged.Ids.Gtins)
	assert.Equal(t, []ids.WikiId{ids.NewWikiId(7)}, merged.Ids.Wiki)
	assert.Equal(t, []string{"DE", "PL"}, merged.Regions.Sorted())
}

func TestMergeProducts_DedupsManufacturers(t *testing.T) {
	org := ids.OrganisationIdFromWiki(ids.NewWikiId(1))
	a := model.Product{Manufacturers: []ids.OrganisationId{org}}
	b := model.Product{Manufacturers: []ids.OrganisationId{org}}

	merged := model.MergeProducts(a, b)
	assert.Len(t, merged.Manufacturers, 1)
}
