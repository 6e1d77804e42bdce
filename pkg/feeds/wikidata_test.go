// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

func TestIsWikidataEntityLine(t *testing.T) {
	cases := map[string]bool{
		"[":            false,
		"]":            false,
		",":            false,
		"":              false,
		"   ":           false,
		`{"id":"Q1"},`: true,
		`{"id":"Q1"}`:  true,
	}
	for line, want := range cases {
		assert.Equal(t, want, feeds.IsWikidataEntityLine([]byte(line)), "line %q", line)
	}
}

func TestParseWikidataLine_SkipsPunctuation(t *testing.T) {
	_, ok, err := feeds.ParseWikidataLine([]byte("]"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseWikidataLine_StripsTrailingComma(t *testing.T) {
	item, ok, err := feeds.ParseWikidataLine([]byte(`{"id":"Q42","labels":{"en":{"language":"en","value":"Acme"}}},`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Q42", item.Id)
	assert.Equal(t, "Acme", item.Label())
}

func TestWikidataItem_Classification(t *testing.T) {
	// An item with a manufacturer claim is a product candidate.
	productLine := `{"id":"Q100","claims":{"P176":[{"mainsnak":{"datavalue":{"type":"wikibase-entityid","value":{"id":"Q200"}}}}]}}`
	item, ok, err := feeds.ParseWikidataLine([]byte(productLine))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, item.IsProduct())
	assert.Equal(t, []string{"Q200"}, item.ManufacturerIds())

	rec, decoded := feeds.DecodeWikidataItem(item)
	require.True(t, decoded)
	assert.Equal(t, "Q100", rec.InnerId)
	assert.Equal(t, model.KindProduct, rec.Kind)
	require.Len(t, rec.CrossRefs, 1)
	assert.Equal(t, "Q200", rec.CrossRefs[0].InnerId)
}

func TestWikidataItem_OrganisationWithWebsite(t *testing.T) {
	line := `{"id":"Q300","claims":{"P856":[{"mainsnak":{"datavalue":{"type":"string","value":"https://acme.example/about"}}}]}}`
	item, ok, err := feeds.ParseWikidataLine([]byte(line))
	require.NoError(t, err)
	require.True(t, ok)

	assert.False(t, item.IsProduct())
	assert.True(t, item.IsOrganisation())

	rec, decoded := feeds.DecodeWikidataItem(item)
	require.True(t, decoded)
	assert.Equal(t, model.KindProducer, rec.Kind)
	assert.Equal(t, []model.Text{{Text: "acme.example", Source: model.SourceWikidata}}, rec.Domains)
}

func TestWikidataItem_Categories(t *testing.T) {
	line := `{"id":"Q400","claims":{"P31":[{"mainsnak":{"datavalue":{"type":"wikibase-entityid","value":{"id":"Q22645"}}}}]}}`
	item, ok, err := feeds.ParseWikidataLine([]byte(line))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"smartphone"}, item.Categories())
}

func TestDecodeWikidataItem_RejectsNeitherPredicate(t *testing.T) {
	item := feeds.WikidataItem{Id: "Q999"}
	_, ok := feeds.DecodeWikidataItem(item)
	assert.False(t, ok)
}
