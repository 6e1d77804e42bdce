// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package sample implements the Sample stage: a verification pass that
// reads a fixed list of well-known (lookup-key, expected-field)
// probes against a crystalised store and asserts each resolves to a
// non-empty record with the expected field set.
package sample

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/ui"
	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/storage"
)

// Lookup names the index a Probe resolves its key through.
type Lookup string

const (
	LookupOrganisationVat    Lookup = "organisation_vat"
	LookupOrganisationWiki   Lookup = "organisation_wiki"
	LookupOrganisationDomain Lookup = "organisation_domain"
	LookupProductEan         Lookup = "product_ean"
	LookupProductGtin        Lookup = "product_gtin"
	LookupProductWiki        Lookup = "product_wiki"
)

// Field names the field a Probe requires to be non-empty once resolved.
type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
)

// Probe is one well-known (lookup-key, expected-field) pair the sample
// file asserts about a crystalised store.
type Probe struct {
	Lookup Lookup `yaml:"lookup"`
	Key    string `yaml:"key"`
	Expect Field  `yaml:"expect"`
}

// LoadProbes reads the probe list from a YAML file.
func LoadProbes(path string) ([]Probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("cannot read probes file %q", path), err.Error(), "check the path exists and is readable", err)
	}
	var probes []Probe
	if err := yaml.Unmarshal(data, &probes); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("cannot decode probes file %q", path), err.Error(), "check the file is a YAML list of {lookup, key, expect}", err)
	}
	return probes, nil
}

// Result summarises one Sample run.
type Result struct {
	Passed int
	Failed int
}

// Run resolves every probe against store and prints a pass/fail line for
// each. A non-empty Result.Failed means the store failed verification.
func Run(ctx context.Context, probes []Probe, store *storage.AppStore) (Result, error) {
	var result Result
	for _, probe := range probes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := checkProbe(store, probe); err != nil {
			ui.Errorf("%s %q: %v", probe.Lookup, probe.Key, err)
			result.Failed++
			continue
		}
		ui.Successf("%s %q", probe.Lookup, probe.Key)
		result.Passed++
	}
	if result.Failed > 0 {
		return result, errors.NewDomainError(
			fmt.Sprintf("%d of %d sample probes failed", result.Failed, len(probes)),
			"a crystalised store must resolve every well-known probe to a populated record",
			"inspect the failing probes above and re-run crystalise once the source data is fixed",
		)
	}
	return result, nil
}

func checkProbe(store *storage.AppStore, probe Probe) error {
	switch probe.Lookup {
	case LookupOrganisationVat:
		return checkOrganisation(store, store.OrganisationByVat, probe)
	case LookupOrganisationWiki:
		return checkOrganisation(store, store.OrganisationByWiki, probe)
	case LookupOrganisationDomain:
		return checkOrganisation(store, store.OrganisationByDomain, probe)
	case LookupProductEan:
		return checkProduct(store, store.ProductByEan, probe)
	case LookupProductGtin:
		return checkProduct(store, store.ProductByGtin, probe)
	case LookupProductWiki:
		return checkProduct(store, store.ProductByWiki, probe)
	default:
		return fmt.Errorf("unknown lookup %q", probe.Lookup)
	}
}

func checkOrganisation(store *storage.AppStore, index *storage.Bucket[storage.StringKey, ids.OrganisationId], probe Probe) error {
	id, ok, err := index.Get(storage.StringKey(probe.Key))
	if err != nil || !ok {
		return notFound(err, ok)
	}
	org, ok, err := store.Organisations.Get(id)
	if err != nil || !ok {
		return notFound(err, ok)
	}
	return checkField(probe.Expect, len(org.Names) > 0, false)
}

func checkProduct(store *storage.AppStore, index *storage.Bucket[storage.StringKey, ids.ProductId], probe Probe) error {
	id, ok, err := index.Get(storage.StringKey(probe.Key))
	if err != nil || !ok {
		return notFound(err, ok)
	}
	product, ok, err := store.Products.Get(id)
	if err != nil || !ok {
		return notFound(err, ok)
	}
	return checkField(probe.Expect, len(product.Names) > 0, len(product.Categories) > 0)
}

func notFound(err error, ok bool) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no record found")
	}
	return nil
}

func checkField(expect Field, hasName, hasCategory bool) error {
	switch expect {
	case FieldName:
		if !hasName {
			return fmt.Errorf("record has no name")
		}
	case FieldCategory:
		if !hasCategory {
			return fmt.Errorf("record has no category")
		}
	default:
		return fmt.Errorf("unknown expected field %q", expect)
	}
	return nil
}
