// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package update implements the supplementary Update stage: it scans a
// fresh Open Food Facts export for every manufacturing-place tag in use,
// counts how often each occurs, and writes a country-tag table listing
// which tags the current translation already resolves and which need a
// manual mapping added.
package update

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/feeds"
)

// StageName identifies this stage in logs and metrics.
const StageName = "update"

// CountryEntry is one row of the regenerated country-tag table: a raw
// Open Food Facts tag, the region codes it resolves to under the current
// translation (nil if unmapped), and how many records carried it.
type CountryEntry struct {
	CountryTag string   `yaml:"country_tag"`
	Regions    []string `yaml:"regions,omitempty"`
	Count      int      `yaml:"count"`
}

// Result summarises one Update run.
type Result struct {
	// Countries is the number of distinct tags found.
	Countries int
	// EmptyCount is how many rows carried no manufacturing-place tag.
	EmptyCount int
	// AssignedPercent is the share of tag occurrences (not distinct tags)
	// the current translation already resolves.
	AssignedPercent int
}

// collector accumulates tag counts for one worker. A plain map is safe
// here because each worker owns its own collector; the Stash unions them
// on a single goroutine.
type collector struct {
	counts     map[string]int
	emptyCount int
}

func newCollector() *collector {
	return &collector{counts: make(map[string]int)}
}

type worker struct {
	decoder   *feeds.RowDecoder
	collector *collector
}

func (w *worker) Process(msg engine.RawMessage) (*collector, bool, error) {
	row, ok := msg.([]string)
	if !ok {
		return nil, false, fmt.Errorf("update: unexpected message type %T", msg)
	}
	tags := w.decoder.Field(row, "manufacturing_places_tags")
	if tags == "" {
		w.collector.emptyCount++
		return nil, false, nil
	}
	for _, tag := range splitTags(tags) {
		w.collector.counts[tag]++
	}
	return nil, false, nil
}

func (w *worker) Finish() (*collector, bool, error) {
	return w.collector, true, nil
}

func splitTags(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if tag := trimSpace(s[start:i]); tag != "" {
				out = append(out, tag)
			}
			start = i + 1
		}
	}
	return out
}

func trimSpace(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}

// stash merges every worker's collector into one, then writes the sorted
// country table to disk on Finalise.
type stash struct {
	outputPath string
	countries  feeds.CountryTagTranslation
	merged     *collector
	result     Result
}

func (s *stash) Merge(c *collector) error {
	for tag, n := range c.counts {
		s.merged.counts[tag] += n
	}
	s.merged.emptyCount += c.emptyCount
	return nil
}

func (s *stash) Finalise() error {
	type tagCount struct {
		tag   string
		count int
	}
	sorted := make([]tagCount, 0, len(s.merged.counts))
	for tag, count := range s.merged.counts {
		sorted = append(sorted, tagCount{tag, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].tag < sorted[j].tag
	})

	var entries []CountryEntry
	var assigned, all int
	for _, tc := range sorted {
		var regions []string
		if code, ok := s.countries[tc.tag]; ok {
			regions = []string{code}
			assigned += tc.count
		}
		all += tc.count
		entries = append(entries, CountryEntry{CountryTag: tc.tag, Regions: regions, Count: tc.count})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return errors.NewInternalError("cannot encode country table", err.Error(), "", err)
	}
	if err := os.WriteFile(s.outputPath, data, 0o644); err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot write country table %q", s.outputPath), err.Error(), "check the target directory is writable", err)
	}

	s.result = Result{Countries: len(entries), EmptyCount: s.merged.emptyCount}
	if all > 0 {
		s.result.AssignedPercent = 100 * assigned / all
	}
	return nil
}

// Run scans the Open Food Facts export at inputPath and writes a refreshed
// country-tag table to outputPath, using countries to mark which tags
// already resolve to a region.
func Run(ctx context.Context, inputPath, outputPath string, countries feeds.CountryTagTranslation) (Result, error) {
	source, header, err := engine.OpenCSVSource(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("update: %w", err)
	}
	decoder := feeds.NewRowDecoder(header)

	factory := func() engine.Worker[*collector] {
		return &worker{decoder: decoder, collector: newCollector()}
	}
	st := &stash{outputPath: outputPath, countries: countries, merged: newCollector()}
	if err := engine.Run[*collector](ctx, source, factory, st); err != nil {
		return Result{}, err
	}
	return st.result, nil
}
