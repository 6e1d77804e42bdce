// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package condense

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

type ofrWorker struct{}

func (w *ofrWorker) Process(msg engine.RawMessage) (model.SubstrateRecord, bool, error) {
	line, ok := msg.([]byte)
	if !ok {
		return model.SubstrateRecord{}, false, fmt.Errorf("condense: unexpected message type %T", msg)
	}
	var entry feeds.OpenFoodRepoEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return model.SubstrateRecord{}, false, fmt.Errorf("condense: decoding open food repo entry: %w", err)
	}
	return feeds.DecodeOpenFoodRepoEntry(entry), true, nil
}

func (w *ofrWorker) Finish() (model.SubstrateRecord, bool, error) {
	return model.SubstrateRecord{}, false, nil
}

// RunOpenFoodRepo condenses the Open Food Repo JSON-lines export at
// inputPath into a substrate file at outputPath.
func RunOpenFoodRepo(ctx context.Context, inputPath, outputPath string) error {
	source, err := engine.OpenLineSource(inputPath)
	if err != nil {
		return fmt.Errorf("condense: %w", err)
	}

	stash, err := newRecordStash(outputPath)
	if err != nil {
		return err
	}

	factory := func() engine.Worker[model.SubstrateRecord] {
		return &ofrWorker{}
	}
	return engine.Run[model.SubstrateRecord](ctx, source, factory, stash)
}
