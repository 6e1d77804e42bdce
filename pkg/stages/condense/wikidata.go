// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package condense

import (
	"context"
	"fmt"

	"github.com/transpaer/condenser/internal/metrics"
	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

type wikidataWorker struct{}

func (w *wikidataWorker) Process(msg engine.RawMessage) (model.SubstrateRecord, bool, error) {
	line, ok := msg.([]byte)
	if !ok {
		return model.SubstrateRecord{}, false, fmt.Errorf("condense: unexpected message type %T", msg)
	}
	item, ok, err := feeds.ParseWikidataLine(line)
	if err != nil {
		return model.SubstrateRecord{}, false, fmt.Errorf("condense: %w", err)
	}
	if !ok {
		return model.SubstrateRecord{}, false, nil
	}
	rec, ok := feeds.DecodeWikidataItem(item)
	if !ok {
		metrics.RecordsRejected(StageName, 1)
		return model.SubstrateRecord{}, false, nil
	}
	return rec, true, nil
}

func (w *wikidataWorker) Finish() (model.SubstrateRecord, bool, error) {
	return model.SubstrateRecord{}, false, nil
}

// RunWikidata condenses the filtered Wikidata dump at filteredPath
// (Filter stage's output) into a substrate file at outputPath.
func RunWikidata(ctx context.Context, filteredPath, outputPath string) error {
	source, err := engine.OpenLineSource(filteredPath)
	if err != nil {
		return fmt.Errorf("condense: %w", err)
	}

	stash, err := newRecordStash(outputPath)
	if err != nil {
		return err
	}

	factory := func() engine.Worker[model.SubstrateRecord] {
		return &wikidataWorker{}
	}
	return engine.Run[model.SubstrateRecord](ctx, source, factory, stash)
}
