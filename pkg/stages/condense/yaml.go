// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package condense

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/pkg/feeds"
)

// RunTco condenses the TCO Certified YAML listing at inputPath into a
// substrate file at outputPath. The listing is small enough to load
// whole rather than stream through the engine.
func RunTco(inputPath, outputPath string) error {
	var entries []feeds.TcoEntry
	if err := loadYAML(inputPath, &entries); err != nil {
		return err
	}

	stash, err := newRecordStash(outputPath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := stash.Merge(feeds.DecodeTcoEntry(e)); err != nil {
			return err
		}
	}
	return stash.Finalise()
}

// RunFti condenses the Fashion Transparency Index YAML listing at
// inputPath into a substrate file at outputPath. A repeated WikidataId
// across entries is a hard error.
func RunFti(inputPath, outputPath string) error {
	var entries []feeds.FtiEntry
	if err := loadYAML(inputPath, &entries); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.WikidataId == "" {
			continue
		}
		if _, dup := seen[e.WikidataId]; dup {
			return fmt.Errorf("condense: fashion transparency index: repeated wikidata id %q", e.WikidataId)
		}
		seen[e.WikidataId] = struct{}{}
	}

	stash, err := newRecordStash(outputPath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := stash.Merge(feeds.DecodeFtiEntry(e)); err != nil {
			return err
		}
	}
	return stash.Finalise()
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("condense: reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("condense: decoding %q: %w", path, err)
	}
	return nil
}
