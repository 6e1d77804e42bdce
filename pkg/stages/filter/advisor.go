// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package filter implements the Filter stage: a second pass over the
// Wikidata dump that keeps only the lines worth condensing,
// judged by an Advisor built from Extract's cache plus every
// already-condensed non-Wikidata substrate.
package filter

import (
	"errors"
	"fmt"
	"io"

	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/stages/extract"
	"github.com/transpaer/condenser/pkg/substrate"
)

// Advisor answers the five keep/drop questions Filter's predicate needs,
// built once from Extract's cache and every condensed substrate file
// other than Wikidata's own (which doesn't exist yet at Filter time).
type Advisor struct {
	manufacturerIds map[string]struct{}
	classIds        map[string]struct{}
	productWikiIds  map[string]struct{}
	producerWikiIds map[string]struct{}
	domains         map[string]struct{}
}

// NewAdvisor seeds an Advisor from Extract's cache.
func NewAdvisor(cache extract.Cache) *Advisor {
	return &Advisor{
		manufacturerIds: cache.ManufacturerSet(),
		classIds:        cache.ClassSet(),
		productWikiIds:  make(map[string]struct{}),
		producerWikiIds: make(map[string]struct{}),
		domains:         make(map[string]struct{}),
	}
}

// LoadSubstrates folds every substrate file in directory, except the one
// tagged excludeSource, into the Advisor's product/producer wiki-id and
// domain sets.
func (a *Advisor) LoadSubstrates(directory string, excludeSource model.Source) error {
	subs, _, err := substrate.Prepare(directory)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	for _, sub := range subs.List() {
		if sub.Source == excludeSource {
			continue
		}
		if err := a.loadSubstrateFile(sub.Path); err != nil {
			return err
		}
	}
	return nil
}

func (a *Advisor) loadSubstrateFile(path string) error {
	reader, err := substrate.OpenReader(path)
	if err != nil {
		return fmt.Errorf("filter: opening substrate %q: %w", path, err)
	}
	defer reader.Close()

	for {
		rec, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("filter: reading substrate %q: %w", path, err)
		}
		a.absorb(rec)
	}
}

func (a *Advisor) absorb(rec model.SubstrateRecord) {
	for _, wikiId := range rec.WikiIds {
		switch rec.Kind {
		case model.KindProduct:
			a.productWikiIds[wikiId.Text] = struct{}{}
		case model.KindProducer:
			a.producerWikiIds[wikiId.Text] = struct{}{}
		}
	}
	for _, domain := range rec.Domains {
		a.domains[domain.Text] = struct{}{}
	}
}

// HasManufacturerId reports whether id was seen as a manufacturer claim's
// value anywhere in the dump (i.e. id names an organisation).
func (a *Advisor) HasManufacturerId(id string) bool {
	_, ok := a.manufacturerIds[id]
	return ok
}

// HasClassId reports whether id was seen as an instance-of/subclass-of
// claim's value anywhere in the dump.
func (a *Advisor) HasClassId(id string) bool {
	_, ok := a.classIds[id]
	return ok
}

// HasProductWikiId reports whether id is referenced as a product by any
// loaded substrate.
func (a *Advisor) HasProductWikiId(id string) bool {
	_, ok := a.productWikiIds[id]
	return ok
}

// HasProducerWikiId reports whether id is referenced as a producer by any
// loaded substrate.
func (a *Advisor) HasProducerWikiId(id string) bool {
	_, ok := a.producerWikiIds[id]
	return ok
}

// HasDomain reports whether domain is referenced by any loaded substrate.
func (a *Advisor) HasDomain(domain string) bool {
	_, ok := a.domains[domain]
	return ok
}
