// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package condense

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

// LoadCountryTagTranslation reads the open_food_facts_countries.yaml
// mapping table (country tag -> ISO-3166 alpha-2 code) Condense needs to
// resolve Open Food Facts' manufacturing_places_tags into Regions.
func LoadCountryTagTranslation(path string) (feeds.CountryTagTranslation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("condense: reading country tag table %q: %w", path, err)
	}
	var table feeds.CountryTagTranslation
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("condense: decoding country tag table %q: %w", path, err)
	}
	return table, nil
}

type offWorker struct {
	rowDecoder *feeds.RowDecoder
	countries  feeds.CountryTagTranslation
}

func (w *offWorker) Process(msg engine.RawMessage) ([]model.SubstrateRecord, bool, error) {
	row, ok := msg.([]string)
	if !ok {
		return nil, false, fmt.Errorf("condense: unexpected message type %T", msg)
	}
	product, orgs := feeds.DecodeOpenFoodFactsRow(w.rowDecoder, row, w.countries)
	return append([]model.SubstrateRecord{product}, orgs...), true, nil
}

func (w *offWorker) Finish() ([]model.SubstrateRecord, bool, error) {
	return nil, false, nil
}

// RunOpenFoodFacts condenses the Open Food Facts export CSV at inputPath
// into a substrate file at outputPath, resolving manufacturing places
// through countries.
func RunOpenFoodFacts(ctx context.Context, inputPath, outputPath string, countries feeds.CountryTagTranslation) error {
	source, header, err := engine.OpenCSVSource(inputPath)
	if err != nil {
		return fmt.Errorf("condense: %w", err)
	}
	rowDecoder := feeds.NewRowDecoder(header)

	stash, err := newMultiRecordStash(outputPath)
	if err != nil {
		return err
	}

	factory := func() engine.Worker[[]model.SubstrateRecord] {
		return &offWorker{rowDecoder: rowDecoder, countries: countries}
	}
	return engine.Run[[]model.SubstrateRecord](ctx, source, factory, stash)
}
