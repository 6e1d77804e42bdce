// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package condense implements the Condense stage: one file in this
// package per external feed, each wiring a pkg/feeds decoder through
// pkg/engine.Run to produce a substrate file.
package condense

import (
	"fmt"

	"github.com/transpaer/condenser/internal/metrics"
	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/substrate"
)

// StageName identifies this stage in logs and metrics.
const StageName = "condense"

// recordStash writes every merged record straight to a substrate file.
// Safe as a pkg/engine.Stash because the engine only ever calls Merge from
// a single goroutine.
type recordStash struct {
	writer *substrate.Writer
}

func newRecordStash(path string) (*recordStash, error) {
	w, err := substrate.CreateWriter(path)
	if err != nil {
		return nil, fmt.Errorf("condense: %w", err)
	}
	return &recordStash{writer: w}, nil
}

func (s *recordStash) Merge(rec model.SubstrateRecord) error {
	if err := s.writer.Write(rec); err != nil {
		return fmt.Errorf("condense: %w", err)
	}
	metrics.RecordsWritten(StageName, 1)
	return nil
}

func (s *recordStash) Finalise() error {
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("condense: %w", err)
	}
	return nil
}

// multiRecordStash writes every record of every merged batch to a
// substrate file, for decoders (Open Food Facts) that derive more than
// one substrate record from a single input row.
type multiRecordStash struct {
	writer *substrate.Writer
}

func newMultiRecordStash(path string) (*multiRecordStash, error) {
	w, err := substrate.CreateWriter(path)
	if err != nil {
		return nil, fmt.Errorf("condense: %w", err)
	}
	return &multiRecordStash{writer: w}, nil
}

func (s *multiRecordStash) Merge(recs []model.SubstrateRecord) error {
	for _, rec := range recs {
		if err := s.writer.Write(rec); err != nil {
			return fmt.Errorf("condense: %w", err)
		}
	}
	metrics.RecordsWritten(StageName, len(recs))
	return nil
}

func (s *multiRecordStash) Finalise() error {
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("condense: %w", err)
	}
	return nil
}
