// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package crystalise implements the Crystalise stage: it merges every
// substrate record mapped to the same canonical id into one
// stored Organisation/Product, resolves cross-references through the
// finished Coagulate map, computes sustainability scores, and populates
// every lookup bucket in the target KV store.
package crystalise

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/logging"
	"github.com/transpaer/condenser/internal/metrics"
	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/stages/coagulate"
	"github.com/transpaer/condenser/pkg/storage"
	"github.com/transpaer/condenser/pkg/substrate"
)

// StageName identifies this stage in logs and metrics.
const StageName = "crystalise"

// Result summarises one Crystalise run.
type Result struct {
	Organisations int
	Products      int
}

// Run merges every substrate record into its canonical Organisation or
// Product, computes scores, and writes every AppStore bucket.
func Run(
	ctx context.Context,
	substrates substrate.Substrates,
	coag *coagulate.Coagulate,
	store *storage.AppStore,
	logger *slog.Logger,
) (Result, error) {
	logger = logging.OrDefault(logger)
	start := time.Now()

	organisations := make(map[ids.OrganisationId]model.Organisation)
	products := make(map[ids.ProductId]model.Product)

	for _, sub := range substrates.List() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := absorb(sub, substrates, coag, organisations, products, logger); err != nil {
			return Result{}, err
		}
	}

	for id, p := range products {
		p.SustainityScore = model.CalculateScore(p)
		products[id] = p
	}

	if err := checkHasId(organisations, products); err != nil {
		return Result{}, err
	}
	if err := materialize(store, organisations, products); err != nil {
		return Result{}, err
	}

	metrics.ObserveStageDuration(StageName, time.Since(start).Seconds())
	return Result{Organisations: len(organisations), Products: len(products)}, nil
}

// absorb reads every record of one substrate file, resolves its canonical
// id through coag, and folds it into the running organisation/product
// maps.
func absorb(
	sub substrate.Substrate,
	substrates substrate.Substrates,
	coag *coagulate.Coagulate,
	organisations map[ids.OrganisationId]model.Organisation,
	products map[ids.ProductId]model.Product,
	logger *slog.Logger,
) error {
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
		metrics.RecordsRead(StageName, 1)

		switch rec.Kind {
		case model.KindProducer:
			canonical, ok := coag.GetOrganisationId(sub.Name, rec.InnerId, substrates)
			if !ok {
				metrics.RecordsRejected(StageName, 1)
				logger.Warn("crystalise.record.unresolved", "substrate", sub.Name, "inner_id", rec.InnerId)
				continue
			}
			one := organisationFromRecord(rec)
			one.CanonicalId = canonical
			if existing, ok := organisations[canonical]; ok {
				organisations[canonical] = model.MergeOrganisations(existing, one)
			} else {
				organisations[canonical] = one
			}
			metrics.RecordsWritten(StageName, 1)

		case model.KindProduct:
			canonical, ok := coag.GetProductId(sub.Name, rec.InnerId, substrates)
			if !ok {
				metrics.RecordsRejected(StageName, 1)
				logger.Warn("crystalise.record.unresolved", "substrate", sub.Name, "inner_id", rec.InnerId)
				continue
			}
			one := productFromRecord(rec)
			one.CanonicalId = canonical
			resolveCrossRefs(rec, substrates, coag, &one, logger)
			if existing, ok := products[canonical]; ok {
				products[canonical] = model.MergeProducts(existing, one)
			} else {
				products[canonical] = one
			}
			metrics.RecordsWritten(StageName, 1)

		default:
			metrics.RecordsRejected(StageName, 1)
			logger.Warn("crystalise.record.unknown_kind", "substrate", sub.Name, "inner_id", rec.InnerId, "kind", rec.Kind)
		}
	}
	return nil
}

// resolveCrossRefs translates a product's manufacturer/follows/followed-by
// cross-references through coag, dropping and logging any target the
// coagulate map doesn't know: the record is dropped from that specific
// field (logged) but the product remains.
func resolveCrossRefs(
	rec model.SubstrateRecord,
	substrates substrate.Substrates,
	coag *coagulate.Coagulate,
	out *model.Product,
	logger *slog.Logger,
) {
	for _, cr := range rec.CrossRefs {
		sourceName := string(cr.Source)
		switch cr.Role {
		case model.CrossRefManufacturer:
			if target, ok := coag.GetOrganisationId(sourceName, cr.InnerId, substrates); ok {
				out.Manufacturers = append(out.Manufacturers, target)
			} else {
				logger.Warn("crystalise.crossref.unresolved", "role", cr.Role, "source", sourceName, "inner_id", cr.InnerId)
			}
		case model.CrossRefFollows:
			if target, ok := coag.GetProductId(sourceName, cr.InnerId, substrates); ok {
				out.Follows = append(out.Follows, target)
			} else {
				logger.Warn("crystalise.crossref.unresolved", "role", cr.Role, "source", sourceName, "inner_id", cr.InnerId)
			}
		case model.CrossRefFollowedBy:
			if target, ok := coag.GetProductId(sourceName, cr.InnerId, substrates); ok {
				out.FollowedBy = append(out.FollowedBy, target)
			} else {
				logger.Warn("crystalise.crossref.unresolved", "role", cr.Role, "source", sourceName, "inner_id", cr.InnerId)
			}
		}
	}
}

// checkHasId enforces the "a record with no id is a hard error" invariant
// across every merged canonical record.
func checkHasId(organisations map[ids.OrganisationId]model.Organisation, products map[ids.ProductId]model.Product) error {
	for id, org := range organisations {
		if !org.HasId() {
			return errors.NewDomainError(
				fmt.Sprintf("Organisation %s has no surviving identifier after merge", id),
				"every alias its substrate records carried failed to parse or was empty",
				"Check the contributing substrate records for malformed identifiers",
			)
		}
	}
	for id, p := range products {
		if !p.HasId() {
			return errors.NewDomainError(
				fmt.Sprintf("Product %s has no surviving identifier after merge", id),
				"every alias its substrate records carried failed to parse or was empty",
				"Check the contributing substrate records for malformed identifiers",
			)
		}
	}
	return nil
}

// materialize builds every lookup index, checks their keys are unique,
// and writes every bucket in sorted canonical-id order.
func materialize(store *storage.AppStore, organisations map[ids.OrganisationId]model.Organisation, products map[ids.ProductId]model.Product) error {
	orgByVat := make(map[string]ids.OrganisationId)
	orgByWiki := make(map[string]ids.OrganisationId)
	orgByDomain := make(map[string]ids.OrganisationId)
	keywordOrg := make(map[string][]ids.OrganisationId)

	var collisions []string
	noteOrg := func(index map[string]ids.OrganisationId, key string, id ids.OrganisationId, bucket string) {
		if existing, ok := index[key]; ok && existing != id {
			collisions = append(collisions, fmt.Sprintf("%s: %q claimed by both %s and %s", bucket, key, existing, id))
			return
		}
		index[key] = id
	}

	orgEntries := make([]storage.Entry[ids.OrganisationId, model.Organisation], 0, len(organisations))
	for id, org := range organisations {
		orgEntries = append(orgEntries, storage.NewEntry(id, org))
		for _, v := range org.Ids.VatIds {
			noteOrg(orgByVat, v.String(), id, "organisation.vat_id")
		}
		for _, w := range org.Ids.Wiki {
			noteOrg(orgByWiki, w.String(), id, "organisation.wiki_id")
		}
		for _, d := range org.Ids.Domains {
			noteOrg(orgByDomain, d, id, "organisation.www_domain")
		}
		for _, key := range collectKeywords(textValues(org.Names)...) {
			keywordOrg[key] = append(keywordOrg[key], id)
		}
	}

	productByEan := make(map[string]ids.ProductId)
	productByGtin := make(map[string]ids.ProductId)
	productByWiki := make(map[string]ids.ProductId)
	keywordProduct := make(map[string][]ids.ProductId)
	productsByCategory := make(map[string][]ids.ProductId)

	noteProduct := func(index map[string]ids.ProductId, key string, id ids.ProductId, bucket string) {
		if existing, ok := index[key]; ok && existing != id {
			collisions = append(collisions, fmt.Sprintf("%s: %q claimed by both %s and %s", bucket, key, existing, id))
			return
		}
		index[key] = id
	}

	productEntries := make([]storage.Entry[ids.ProductId, model.Product], 0, len(products))
	for id, p := range products {
		productEntries = append(productEntries, storage.NewEntry(id, p))
		for _, e := range p.Ids.Eans {
			noteProduct(productByEan, e.String(), id, "product.ean")
		}
		for _, g := range p.Ids.Gtins {
			noteProduct(productByGtin, g.String(), id, "product.gtin")
		}
		for _, w := range p.Ids.Wiki {
			noteProduct(productByWiki, w.String(), id, "product.wiki_id")
		}
		for _, key := range collectKeywords(append(textValues(p.Names), textValues(p.Categories)...)...) {
			keywordProduct[key] = append(keywordProduct[key], id)
		}
		for _, c := range p.Categories {
			category := strings.ToLower(c.Text)
			productsByCategory[category] = append(productsByCategory[category], id)
		}
	}

	if len(collisions) > 0 {
		sort.Strings(collisions)
		return errors.NewDomainError(
			"Crystalise found identifier keys shared by two different canonical ids",
			strings.Join(collisions, "; "),
			"Inspect the listed substrates for a duplicated VAT id, Wiki id, EAN or GTIN claimed by two different records",
		)
	}

	if err := store.Organisations.PutAll(orgEntries); err != nil {
		return err
	}
	if err := store.Products.PutAll(productEntries); err != nil {
		return err
	}
	if err := putOrgIndex(store.OrganisationByVat, orgByVat); err != nil {
		return err
	}
	if err := putOrgIndex(store.OrganisationByWiki, orgByWiki); err != nil {
		return err
	}
	if err := putOrgIndex(store.OrganisationByDomain, orgByDomain); err != nil {
		return err
	}
	if err := putProductIndex(store.ProductByEan, productByEan); err != nil {
		return err
	}
	if err := putProductIndex(store.ProductByGtin, productByGtin); err != nil {
		return err
	}
	if err := putProductIndex(store.ProductByWiki, productByWiki); err != nil {
		return err
	}
	if err := putOrgKeywords(store.KeywordOrganisations, keywordOrg); err != nil {
		return err
	}
	if err := putProductKeywords(store.KeywordProducts, keywordProduct); err != nil {
		return err
	}
	if err := putProductKeywords(store.ProductsByCategory, productsByCategory); err != nil {
		return err
	}
	return nil
}

func putOrgIndex(bucket *storage.Bucket[storage.StringKey, ids.OrganisationId], index map[string]ids.OrganisationId) error {
	entries := make([]storage.Entry[storage.StringKey, ids.OrganisationId], 0, len(index))
	for k, v := range index {
		entries = append(entries, storage.NewEntry(storage.StringKey(k), v))
	}
	return bucket.PutAll(entries)
}

func putProductIndex(bucket *storage.Bucket[storage.StringKey, ids.ProductId], index map[string]ids.ProductId) error {
	entries := make([]storage.Entry[storage.StringKey, ids.ProductId], 0, len(index))
	for k, v := range index {
		entries = append(entries, storage.NewEntry(storage.StringKey(k), v))
	}
	return bucket.PutAll(entries)
}

func putOrgKeywords(bucket *storage.Bucket[storage.StringKey, []ids.OrganisationId], index map[string][]ids.OrganisationId) error {
	entries := make([]storage.Entry[storage.StringKey, []ids.OrganisationId], 0, len(index))
	for k, v := range index {
		sort.Slice(v, func(i, j int) bool { return v[i].String() < v[j].String() })
		entries = append(entries, storage.NewEntry(storage.StringKey(k), v))
	}
	return bucket.PutAll(entries)
}

func putProductKeywords(bucket *storage.Bucket[storage.StringKey, []ids.ProductId], index map[string][]ids.ProductId) error {
	entries := make([]storage.Entry[storage.StringKey, []ids.ProductId], 0, len(index))
	for k, v := range index {
		sort.Slice(v, func(i, j int) bool { return v[i].String() < v[j].String() })
		entries = append(entries, storage.NewEntry(storage.StringKey(k), v))
	}
	return bucket.PutAll(entries)
}

func textValues(texts []model.Text) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = t.Text
	}
	return out
}
