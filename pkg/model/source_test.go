// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/model"
)

func TestSource_Valid(t *testing.T) {
	assert.True(t, model.SourceWikidata.Valid())
	assert.True(t, model.SourceOpenFoodRepo.Valid())
	assert.False(t, model.Source("bogus").Valid())
}

func TestParseSource(t *testing.T) {
	src, err := model.ParseSource("bcorp")
	require.NoError(t, err)
	assert.Equal(t, model.SourceBCorp, src)

	_, err = model.ParseSource("not-a-source")
	assert.Error(t, err)
}
