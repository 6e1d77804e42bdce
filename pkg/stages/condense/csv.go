// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package condense

import (
	"context"
	"fmt"

	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

// csvRowDecoder decodes one already-header-resolved CSV row into a
// substrate record.
type csvRowDecoder func(d *feeds.RowDecoder, row []string) (model.SubstrateRecord, error)

// runCSV drives a CSV feed through the engine, writing one substrate
// record per row to outputPath.
func runCSV(ctx context.Context, inputPath, outputPath string, decode csvRowDecoder) error {
	source, header, err := engine.OpenCSVSource(inputPath)
	if err != nil {
		return fmt.Errorf("condense: %w", err)
	}
	rowDecoder := feeds.NewRowDecoder(header)

	stash, err := newRecordStash(outputPath)
	if err != nil {
		return err
	}

	factory := func() engine.Worker[model.SubstrateRecord] {
		return &csvWorker{rowDecoder: rowDecoder, decode: decode}
	}
	return engine.Run[model.SubstrateRecord](ctx, source, factory, stash)
}

type csvWorker struct {
	rowDecoder *feeds.RowDecoder
	decode     csvRowDecoder
}

func (w *csvWorker) Process(msg engine.RawMessage) (model.SubstrateRecord, bool, error) {
	row, ok := msg.([]string)
	if !ok {
		return model.SubstrateRecord{}, false, fmt.Errorf("condense: unexpected message type %T", msg)
	}
	rec, err := w.decode(w.rowDecoder, row)
	if err != nil {
		return model.SubstrateRecord{}, false, err
	}
	return rec, true, nil
}

func (w *csvWorker) Finish() (model.SubstrateRecord, bool, error) {
	return model.SubstrateRecord{}, false, nil
}

// RunBCorp condenses the B Corp registry CSV at inputPath into a
// substrate file at outputPath.
func RunBCorp(ctx context.Context, inputPath, outputPath string) error {
	return runCSV(ctx, inputPath, outputPath, feeds.DecodeBCorpRow)
}

// RunEuEcolabel condenses the EU Ecolabel registry CSV at inputPath into
// a substrate file at outputPath.
func RunEuEcolabel(ctx context.Context, inputPath, outputPath string) error {
	return runCSV(ctx, inputPath, outputPath, feeds.DecodeEuEcolabelRow)
}
