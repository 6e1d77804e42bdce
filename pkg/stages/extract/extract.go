// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package extract implements the Extract stage: a single pass over the
// Wikidata graph dump that seeds two id sets Filter and Condense need,
// every manufacturer id (organisation candidates) and every
// instance-of/subclass-of class id (category reasoning seeds), without
// materialising the dump itself.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/transpaer/condenser/internal/metrics"
	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
)

// StageName identifies this stage in logs and metrics.
const StageName = "extract"

// Cache is the JSON artifact Extract writes: the sorted, deduplicated
// union of every manufacturer id and class id seen across the dump.
type Cache struct {
	ManufacturerIds []string `json:"manufacturer_ids"`
	ClassIds        []string `json:"class_ids"`
}

// collector accumulates ids for one worker. Plain maps are safe here
// because each worker owns its own collector; the Stash unions them on a
// single goroutine.
type collector struct {
	manufacturerIds map[string]struct{}
	classIds        map[string]struct{}
}

func newCollector() *collector {
	return &collector{
		manufacturerIds: make(map[string]struct{}),
		classIds:        make(map[string]struct{}),
	}
}

func (c *collector) addManufacturers(ids []string) {
	for _, id := range ids {
		c.manufacturerIds[id] = struct{}{}
	}
}

func (c *collector) addClasses(ids []string) {
	for _, id := range ids {
		c.classIds[id] = struct{}{}
	}
}

// worker implements engine.Worker[*collector]: it never emits per line,
// only once at Finish, carrying its whole accumulator.
type worker struct {
	collector *collector
}

func newWorker() engine.Worker[*collector] {
	return &worker{collector: newCollector()}
}

func (w *worker) Process(msg engine.RawMessage) (*collector, bool, error) {
	line, ok := msg.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("extract: unexpected message type %T", msg)
	}
	item, ok, err := feeds.ParseWikidataLine(line)
	if err != nil {
		return nil, false, fmt.Errorf("extract: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	w.collector.addManufacturers(item.ManufacturerIds())
	w.collector.addClasses(item.InstanceOfIds())
	w.collector.addClasses(item.SubclassOfIds())
	return nil, false, nil
}

func (w *worker) Finish() (*collector, bool, error) {
	return w.collector, true, nil
}

// stash merges every worker's collector into one, then writes the sorted
// cache to disk on Finalise.
type stash struct {
	cachePath string
	merged    *collector
}

// NewStash builds the Stash that writes its merged result to cachePath.
func NewStash(cachePath string) engine.Stash[*collector] {
	return &stash{cachePath: cachePath, merged: newCollector()}
}

func (s *stash) Merge(c *collector) error {
	s.merged.addManufacturers(keys(c.manufacturerIds))
	s.merged.addClasses(keys(c.classIds))
	metrics.RecordsWritten(StageName, 1)
	return nil
}

func (s *stash) Finalise() error {
	cache := Cache{
		ManufacturerIds: sortedKeys(s.merged.manufacturerIds),
		ClassIds:        sortedKeys(s.merged.classIds),
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("extract: encoding cache: %w", err)
	}
	if err := os.WriteFile(s.cachePath, data, 0o644); err != nil {
		return fmt.Errorf("extract: writing cache %q: %w", s.cachePath, err)
	}
	return nil
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := keys(m)
	sort.Strings(out)
	return out
}

// Run drives one Extract pass over the dump at dumpPath, writing the
// resulting Cache to cachePath.
func Run(ctx context.Context, dumpPath, cachePath string) error {
	source, err := engine.OpenLineSource(dumpPath)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return engine.Run[*collector](ctx, source, newWorker, NewStash(cachePath))
}

// ManufacturerSet returns the cache's manufacturer ids as a lookup set.
func (c Cache) ManufacturerSet() map[string]struct{} { return toSet(c.ManufacturerIds) }

// ClassSet returns the cache's class ids as a lookup set.
func (c Cache) ClassSet() map[string]struct{} { return toSet(c.ClassIds) }

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// LoadCache reads a previously written Cache from disk.
func LoadCache(cachePath string) (Cache, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return Cache{}, fmt.Errorf("extract: reading cache %q: %w", cachePath, err)
	}
	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return Cache{}, fmt.Errorf("extract: decoding cache %q: %w", cachePath, err)
	}
	return cache, nil
}
