// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package filter

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/transpaer/condenser/internal/metrics"
	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

// StageName identifies this stage in logs and metrics.
const StageName = "filter"

// flushThreshold is the number of kept lines written between explicit
// flushes of the stash's buffered writer; the writer also writes through
// to the filtered dump file whenever its buffer fills.
const flushThreshold = 100_000

// ShouldKeep implements Filter's five-criteria predicate: an item is kept
// if it is a product or organisation by Wikidata's own claims, was seen
// as a manufacturer anywhere in the dump, is referenced as a
// producer/product by any other substrate, or asserts an official
// website whose domain some substrate already knows.
func (a *Advisor) ShouldKeep(item feeds.WikidataItem) bool {
	if item.IsProduct() || item.IsOrganisation() {
		return true
	}
	if a.HasManufacturerId(item.Id) {
		return true
	}
	if a.HasProductWikiId(item.Id) || a.HasProducerWikiId(item.Id) {
		return true
	}
	for _, url := range item.OfficialWebsites() {
		if a.HasDomain(model.NormalizeDomain(url)) {
			return true
		}
	}
	return false
}

// worker type-asserts each line, decides whether to keep it via the
// Advisor's predicate, and emits the original raw bytes unchanged so the
// filtered dump stays byte-identical to the surviving subset of lines.
type worker struct {
	advisor *Advisor
}

func newWorkerFactory(advisor *Advisor) engine.WorkerFactory[[]byte] {
	return func() engine.Worker[[]byte] { return &worker{advisor: advisor} }
}

func (w *worker) Process(msg engine.RawMessage) ([]byte, bool, error) {
	line, ok := msg.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("filter: unexpected message type %T", msg)
	}
	item, ok, err := feeds.ParseWikidataLine(line)
	if err != nil {
		return nil, false, fmt.Errorf("filter: %w", err)
	}
	if !ok || !w.advisor.ShouldKeep(item) {
		return nil, false, nil
	}
	return line, true, nil
}

func (w *worker) Finish() ([]byte, bool, error) { return nil, false, nil }

// stash buffers kept lines and periodically appends them to the filtered
// dump file, keeping memory bounded over a run spanning millions of
// entities.
type stash struct {
	path    string
	file    *os.File
	writer  *bufio.Writer
	pending int
}

// NewStash opens (truncating) the filtered dump file at path.
func NewStash(path string) (engine.Stash[[]byte], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("filter: creating filtered dump %q: %w", path, err)
	}
	return &stash{path: path, file: f, writer: bufio.NewWriter(f)}, nil
}

func (s *stash) Merge(line []byte) error {
	if _, err := s.writer.Write(line); err != nil {
		return fmt.Errorf("filter: writing filtered dump: %w", err)
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("filter: writing filtered dump: %w", err)
	}
	metrics.RecordsWritten(StageName, 1)

	s.pending++
	if s.pending >= flushThreshold {
		if err := s.writer.Flush(); err != nil {
			return fmt.Errorf("filter: flushing filtered dump: %w", err)
		}
		metrics.StashSpill(StageName)
		s.pending = 0
	}
	return nil
}

func (s *stash) Finalise() error {
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("filter: flushing filtered dump: %w", err)
	}
	return s.file.Close()
}

// Run drives one Filter pass over the dump at dumpPath, writing kept
// lines to filteredPath. advisor must already have LoadSubstrates called.
func Run(ctx context.Context, dumpPath, filteredPath string, advisor *Advisor) error {
	source, err := engine.OpenLineSource(dumpPath)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	stash, err := NewStash(filteredPath)
	if err != nil {
		return err
	}
	return engine.Run[[]byte](ctx, source, newWorkerFactory(advisor), stash)
}
