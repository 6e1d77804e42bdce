// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package update_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/stages/update"
)

func TestRun_CountsAndAssignsTags(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "off.csv")
	outputPath := filepath.Join(dir, "countries.yaml")

	csv := "code,manufacturing_places_tags\n" +
		"1,\"en:france\"\n" +
		"2,\"en:france,en:spain\"\n" +
		"3,\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(csv), 0o644))

	countries := feeds.CountryTagTranslation{"en:france": "FR"}

	result, err := update.Run(context.Background(), inputPath, outputPath, countries)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Countries)
	assert.Equal(t, 1, result.EmptyCount)
	assert.Equal(t, 66, result.AssignedPercent)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var entries []update.CountryEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "en:france", entries[0].CountryTag)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, []string{"FR"}, entries[0].Regions)
	assert.Equal(t, "en:spain", entries[1].CountryTag)
	assert.Empty(t, entries[1].Regions)
}
