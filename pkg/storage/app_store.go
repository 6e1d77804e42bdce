// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package storage

import (
	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
)

// Bucket names, one per lookup index the store exposes.
const (
	bucketOrganisations = "organisation.id"
	bucketProducts      = "product.id"

	bucketKeywordOrganisations = "keyword.organisation"
	bucketKeywordProducts      = "keyword.product"

	bucketOrganisationVat    = "organisation.vat_id"
	bucketOrganisationWiki   = "organisation.wiki_id"
	bucketOrganisationDomain = "organisation.www_domain"

	bucketProductEan  = "product.ean"
	bucketProductGtin = "product.gtin"
	bucketProductWiki = "product.wiki_id"

	bucketProductCategory = "product.category"
)

// AppStore exposes every bucket Crystalise populates and Oxidise/Sample
// (and the out-of-scope read-only HTTP server) read, each typed by its key
// and value kind.
type AppStore struct {
	Organisations *Bucket[ids.OrganisationId, model.Organisation]
	Products      *Bucket[ids.ProductId, model.Product]

	KeywordOrganisations *Bucket[StringKey, []ids.OrganisationId]
	KeywordProducts      *Bucket[StringKey, []ids.ProductId]

	OrganisationByVat    *Bucket[StringKey, ids.OrganisationId]
	OrganisationByWiki   *Bucket[StringKey, ids.OrganisationId]
	OrganisationByDomain *Bucket[StringKey, ids.OrganisationId]

	ProductByEan  *Bucket[StringKey, ids.ProductId]
	ProductByGtin *Bucket[StringKey, ids.ProductId]
	ProductByWiki *Bucket[StringKey, ids.ProductId]

	ProductsByCategory *Bucket[StringKey, []ids.ProductId]
}

// NewAppStore wires every named bucket onto store's underlying database.
func NewAppStore(store *DbStore) *AppStore {
	db := store.db
	return &AppStore{
		Organisations: NewBucket[ids.OrganisationId, model.Organisation](db, bucketOrganisations),
		Products:      NewBucket[ids.ProductId, model.Product](db, bucketProducts),

		KeywordOrganisations: NewBucket[StringKey, []ids.OrganisationId](db, bucketKeywordOrganisations),
		KeywordProducts:      NewBucket[StringKey, []ids.ProductId](db, bucketKeywordProducts),

		OrganisationByVat:    NewBucket[StringKey, ids.OrganisationId](db, bucketOrganisationVat),
		OrganisationByWiki:   NewBucket[StringKey, ids.OrganisationId](db, bucketOrganisationWiki),
		OrganisationByDomain: NewBucket[StringKey, ids.OrganisationId](db, bucketOrganisationDomain),

		ProductByEan:  NewBucket[StringKey, ids.ProductId](db, bucketProductEan),
		ProductByGtin: NewBucket[StringKey, ids.ProductId](db, bucketProductGtin),
		ProductByWiki: NewBucket[StringKey, ids.ProductId](db, bucketProductWiki),

		ProductsByCategory: NewBucket[StringKey, []ids.ProductId](db, bucketProductCategory),
	}
}
