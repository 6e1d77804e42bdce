// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package coagulate implements the Coagulate stage: a union-find pass
// over every substrate record's identifiers assigns each
// connected component one canonical OrganisationId or ProductId, persisted
// as a bidirectional ExternalId <-> canonical id mapping.
package coagulate

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/substrate"
)

// externalId names one substrate record uniquely across every substrate
// file: the file it came from plus its InnerId within that file.
type externalId struct {
	dataSetId substrate.DataSetId
	inner     string
}

// aliasKind tags which identifier field an aliasId was derived from.
type aliasKind string

const (
	aliasWiki   aliasKind = "wiki"
	aliasVat    aliasKind = "vat"
	aliasGtin   aliasKind = "gtin"
	aliasEan    aliasKind = "ean"
	aliasDomain aliasKind = "domain"
)

// aliasId is a synthetic external id in a key space separate from
// externalId, letting two records union through a shared Wikidata id, VAT
// id, GTIN, EAN or domain without the two key spaces colliding.
type aliasId struct {
	kind  aliasKind
	value string
}

// Coagulate is the finished bidirectional mapping: every ExternalId that
// belongs to a producer-kind substrate record resolves to a canonical
// OrganisationId, and every ExternalId that belongs to a product-kind
// record resolves to a canonical ProductId.
type Coagulate struct {
	producer map[externalId]ids.OrganisationId
	product  map[externalId]ids.ProductId
}

// GetOrganisationId resolves a (substrate name, inner id) pair to its
// canonical OrganisationId. The bool is false if the pair is unknown.
func (c *Coagulate) GetOrganisationId(substrateName, innerId string, substrates substrate.Substrates) (ids.OrganisationId, bool) {
	dataSetId, ok := substrates.GetIdForName(substrateName)
	if !ok {
		return ids.OrganisationId{}, false
	}
	id, ok := c.producer[externalId{dataSetId: dataSetId, inner: innerId}]
	return id, ok
}

// GetProductId resolves a (substrate name, inner id) pair to its canonical
// ProductId. The bool is false if the pair is unknown.
func (c *Coagulate) GetProductId(substrateName, innerId string, substrates substrate.Substrates) (ids.ProductId, bool) {
	dataSetId, ok := substrates.GetIdForName(substrateName)
	if !ok {
		return ids.ProductId{}, false
	}
	id, ok := c.product[externalId{dataSetId: dataSetId, inner: innerId}]
	return id, ok
}

// Build scans every registered substrate, union-finds their records'
// shared identifiers into connected components, and assigns each component
// a canonical id.
func Build(substrates substrate.Substrates) (*Coagulate, error) {
	uf := newUnionFind()
	records := make(map[externalId]model.SubstrateRecord)

	for _, sub := range substrates.List() {
		if err := absorbSubstrate(sub, uf, records); err != nil {
			return nil, err
		}
	}

	producer := make(map[externalId]ids.OrganisationId)
	product := make(map[externalId]ids.ProductId)

	for _, members := range uf.components() {
		var keys []externalId
		for _, m := range members {
			if key, ok := m.(externalId); ok {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			continue
		}
		assignComponent(keys, records, producer, product)
	}

	return &Coagulate{producer: producer, product: product}, nil
}

func absorbSubstrate(sub substrate.Substrate, uf *unionFind, records map[externalId]model.SubstrateRecord) error {
	reader, err := substrate.OpenReader(sub.Path)
	if err != nil {
		return errors.NewIOError(
			fmt.Sprintf("Cannot open substrate file %q", sub.Path),
			err.Error(),
			"Check the file exists and is readable",
			err,
		)
	}
	defer reader.Close()

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.NewParsingError(
				fmt.Sprintf("Cannot read substrate file %q", sub.Path),
				err.Error(),
				"Check the file was written by a compatible version of the pipeline",
				err,
			)
		}

		self := externalId{dataSetId: sub.Id, inner: rec.InnerId}
		records[self] = rec
		uf.find(self) // register a singleton set even if rec carries no aliases

		for _, t := range rec.WikiIds {
			uf.union(self, aliasId{kind: aliasWiki, value: t.Text})
		}
		for _, t := range rec.VatIds {
			uf.union(self, aliasId{kind: aliasVat, value: t.Text})
		}
		for _, t := range rec.Gtins {
			uf.union(self, aliasId{kind: aliasGtin, value: t.Text})
		}
		for _, t := range rec.Eans {
			uf.union(self, aliasId{kind: aliasEan, value: t.Text})
		}
		for _, t := range rec.Domains {
			uf.union(self, aliasId{kind: aliasDomain, value: t.Text})
		}
	}
	return nil
}

// assignComponent gives one connected component of ExternalId keys a
// canonical id, preferring a WikiId representative, then the kind-specific
// fallback (smallest Gtin for a product, a VatId for an organisation), and
// tie-breaking on lexicographic canonical string.
func assignComponent(
	keys []externalId,
	records map[externalId]model.SubstrateRecord,
	producer map[externalId]ids.OrganisationId,
	product map[externalId]ids.ProductId,
) {
	isProduct := false
	for _, key := range keys {
		if records[key].Kind == model.KindProduct {
			isProduct = true
			break
		}
	}

	if isProduct {
		canonical := canonicalProductId(keys, records)
		for _, key := range keys {
			product[key] = canonical
		}
		return
	}

	canonical := canonicalOrganisationId(keys, records)
	for _, key := range keys {
		producer[key] = canonical
	}
}

func canonicalProductId(keys []externalId, records map[externalId]model.SubstrateRecord) ids.ProductId {
	var wikiCandidates []ids.WikiId
	var gtinCandidates []ids.Gtin

	for _, key := range keys {
		rec := records[key]
		for _, t := range rec.WikiIds {
			if w, err := ids.ParseWikiId(t.Text); err == nil {
				wikiCandidates = append(wikiCandidates, w)
			}
		}
		for _, t := range rec.Gtins {
			if g, err := ids.ParseGtin(t.Text); err == nil {
				gtinCandidates = append(gtinCandidates, g)
			}
		}
	}

	if len(wikiCandidates) > 0 {
		return ids.ProductIdFromWiki(smallestWiki(wikiCandidates))
	}
	if len(gtinCandidates) > 0 {
		return ids.ProductIdFromGtin(smallestGtin(gtinCandidates))
	}
	// No identifier survived parsing; fall back to the all-zero GTIN.
	// Every such component shares this id, and Crystalise rejects the
	// merged product because it carries no identifier.
	return ids.ProductIdFromGtin(ids.NewGtin(0))
}

func canonicalOrganisationId(keys []externalId, records map[externalId]model.SubstrateRecord) ids.OrganisationId {
	var wikiCandidates []ids.WikiId
	var vatCandidates []ids.VatId

	for _, key := range keys {
		rec := records[key]
		for _, t := range rec.WikiIds {
			if w, err := ids.ParseWikiId(t.Text); err == nil {
				wikiCandidates = append(wikiCandidates, w)
			}
		}
		for _, t := range rec.VatIds {
			if v, err := ids.ParseVatId(t.Text); err == nil {
				vatCandidates = append(vatCandidates, v)
			}
		}
	}

	if len(wikiCandidates) > 0 {
		return ids.OrganisationIdFromWiki(smallestWiki(wikiCandidates))
	}
	if len(vatCandidates) > 0 {
		return ids.OrganisationIdFromVat(smallestVat(vatCandidates))
	}
	return ids.OrganisationIdFromVat(ids.NewVatId(""))
}

func smallestWiki(candidates []ids.WikiId) ids.WikiId {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c < best {
			best = c
		}
	}
	return best
}

func smallestGtin(candidates []ids.Gtin) ids.Gtin {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c < best {
			best = c
		}
	}
	return best
}

func smallestVat(candidates []ids.VatId) ids.VatId {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.String() < best.String() {
			best = c
		}
	}
	return best
}

// externalEntry is one (dataset, inner id) pair in the persisted YAML
// format, mirroring the original's ExternalEntry shape field-for-field.
type externalEntry struct {
	Dataset string `yaml:"s"`
	Inner   string `yaml:"i"`
}

type coagulateData struct {
	Producer map[string][]externalEntry `yaml:"producer"`
	Product  map[string][]externalEntry `yaml:"product"`
}

// Save writes the mapping to path as `canonical_id -> [ExternalId ...]`,
// sorted for determinism.
func (c *Coagulate) Save(path string, substrates substrate.Substrates) error {
	data := coagulateData{
		Producer: make(map[string][]externalEntry),
		Product:  make(map[string][]externalEntry),
	}

	for external, canonical := range c.producer {
		name, ok := substrates.GetNameForId(external.dataSetId)
		if !ok {
			return errors.NewDomainError(
				"Cannot save the coagulate",
				fmt.Sprintf("no substrate name registered for data set id %d", external.dataSetId),
				"This indicates a bug: every ExternalId built by Build() comes from a registered substrate",
			)
		}
		key := canonical.String()
		data.Producer[key] = append(data.Producer[key], externalEntry{Dataset: name, Inner: external.inner})
	}
	for external, canonical := range c.product {
		name, ok := substrates.GetNameForId(external.dataSetId)
		if !ok {
			return errors.NewDomainError(
				"Cannot save the coagulate",
				fmt.Sprintf("no substrate name registered for data set id %d", external.dataSetId),
				"This indicates a bug: every ExternalId built by Build() comes from a registered substrate",
			)
		}
		key := canonical.String()
		data.Product[key] = append(data.Product[key], externalEntry{Dataset: name, Inner: external.inner})
	}

	sortEntries(data.Producer)
	sortEntries(data.Product)

	out, err := yaml.Marshal(data)
	if err != nil {
		return errors.NewInternalError("Cannot serialise the coagulate", err.Error(), "Report this as a bug", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.NewIOError(
			fmt.Sprintf("Cannot write the coagulate to %q", path),
			err.Error(),
			"Check the target directory is writable",
			err,
		)
	}
	return nil
}

func sortEntries(m map[string][]externalEntry) {
	for key, entries := range m {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Dataset != entries[j].Dataset {
				return entries[i].Dataset < entries[j].Dataset
			}
			return entries[i].Inner < entries[j].Inner
		})
		m[key] = entries
	}
}

// Load reads a previously saved coagulate from path. An ExternalId
// appearing under two different canonical ids, or an entry naming a
// substrate not present in substrates, is fatal.
func Load(path string, substrates substrate.Substrates) (*Coagulate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(
			fmt.Sprintf("Cannot read the coagulate from %q", path),
			err.Error(),
			"Run the coagulate stage before crystalise/oxidise",
			err,
		)
	}
	var parsed coagulateData
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("Cannot parse the coagulate at %q", path),
			err.Error(),
			"Regenerate it by re-running the coagulate stage",
			err,
		)
	}

	producer := make(map[externalId]ids.OrganisationId)
	for key, entries := range parsed.Producer {
		canonical, err := ids.ParseOrganisationId(key)
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("Cannot parse the coagulate at %q", path),
				fmt.Sprintf("invalid organisation id %q: %v", key, err),
				"Regenerate it by re-running the coagulate stage",
				err,
			)
		}
		for _, entry := range entries {
			external, err := resolveExternal(entry, substrates)
			if err != nil {
				return nil, err
			}
			if _, dup := producer[external]; dup {
				return nil, errors.NewDomainError(
					"Cannot load the coagulate",
					fmt.Sprintf("external id %q/%q appears twice with different canonical ids", entry.Dataset, entry.Inner),
					"The coagulate file is corrupt; regenerate it by re-running the coagulate stage",
				)
			}
			producer[external] = canonical
		}
	}

	product := make(map[externalId]ids.ProductId)
	for key, entries := range parsed.Product {
		canonical, err := ids.ParseProductId(key)
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("Cannot parse the coagulate at %q", path),
				fmt.Sprintf("invalid product id %q: %v", key, err),
				"Regenerate it by re-running the coagulate stage",
				err,
			)
		}
		for _, entry := range entries {
			external, err := resolveExternal(entry, substrates)
			if err != nil {
				return nil, err
			}
			if _, dup := product[external]; dup {
				return nil, errors.NewDomainError(
					"Cannot load the coagulate",
					fmt.Sprintf("external id %q/%q appears twice with different canonical ids", entry.Dataset, entry.Inner),
					"The coagulate file is corrupt; regenerate it by re-running the coagulate stage",
				)
			}
			product[external] = canonical
		}
	}

	return &Coagulate{producer: producer, product: product}, nil
}

func resolveExternal(entry externalEntry, substrates substrate.Substrates) (externalId, error) {
	dataSetId, ok := substrates.GetIdForName(entry.Dataset)
	if !ok {
		return externalId{}, errors.NewDomainError(
			"Cannot load the coagulate",
			fmt.Sprintf("substrate name %q not found among the currently registered substrates", entry.Dataset),
			"Make sure the substrate directory matches the one the coagulate was built from",
		)
	}
	return externalId{dataSetId: dataSetId, inner: entry.Inner}, nil
}
