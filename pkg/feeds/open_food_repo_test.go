// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

func TestDecodeOpenFoodRepoEntry(t *testing.T) {
	e := feeds.OpenFoodRepoEntry{
		Id:                      1,
		Barcode:                 "4006381333931",
		Country:                 "DE",
		Images:                  []feeds.OpenFoodRepoImage{{Large: "https://img.example/large.jpg"}},
		NameTranslations:        map[string]string{"de": "Schokolade"},
		DisplayNameTranslations: map[string]string{"en": "Chocolate"},
	}

	rec := feeds.DecodeOpenFoodRepoEntry(e)

	assert.Equal(t, "ofr:4006381333931", rec.InnerId)
	assert.Equal(t, model.KindProduct, rec.Kind)
	assert.Equal(t, []model.Text{{Text: "4006381333931", Source: model.SourceOpenFoodRepo}}, rec.Gtins)
	assert.Equal(t, []model.Text{{Text: "Chocolate", Source: model.SourceOpenFoodRepo}}, rec.Names)
	assert.Equal(t, []model.Image{{Image: "https://img.example/large.jpg", Source: model.SourceOpenFoodRepo}}, rec.Images)
	assert.Equal(t, []model.Text{{Text: "DE", Source: model.SourceOpenFoodRepo}}, rec.Origins)
}

func TestDecodeOpenFoodRepoEntry_FallsBackToNameTranslations(t *testing.T) {
	e := feeds.OpenFoodRepoEntry{
		Barcode:          "123",
		NameTranslations: map[string]string{"en": "Fallback Name"},
	}

	rec := feeds.DecodeOpenFoodRepoEntry(e)
	assert.Equal(t, []model.Text{{Text: "Fallback Name", Source: model.SourceOpenFoodRepo}}, rec.Names)
}
