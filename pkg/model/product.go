// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model

import "github.com/transpaer/condenser/pkg/ids"

// ProductIds is the set of identifiers a canonical Product answers to.
type ProductIds struct {
	Eans  []ids.Ean    `json:"eans,omitempty"`
	Gtins []ids.Gtin   `json:"gtins,omitempty"`
	Wiki  []ids.WikiId `json:"wiki,omitempty"`
}

// Product is the canonical, stored record materialised once per connected
// component during Crystalise.
type Product struct {
	CanonicalId ids.ProductId `json:"canonical_id"`

	Ids          ProductIds `json:"ids"`
	Names        []Text     `json:"names,omitempty"`
	Descriptions []Text     `json:"descriptions,omitempty"`
	Images       []Image    `json:"images,omitempty"`
	Categories   []Text     `json:"categories,omitempty"`
	Regions      Regions    `json:"regions"`
	Origins      []Text     `json:"origins,omitempty"`

	Certifications Certifications `json:"certifications"`

	Manufacturers []ids.OrganisationId `json:"manufacturers,omitempty"`
	Follows       []ids.ProductId      `json:"follows,omitempty"`
	FollowedBy    []ids.ProductId      `json:"followed_by,omitempty"`

	SustainityScore ScoreResult `json:"sustainity_score"`
}

// HasId reports whether the invariant "at least one id exists" holds.
func (p Product) HasId() bool {
	return len(p.Ids.Eans) > 0 || len(p.Ids.Gtins) > 0 || len(p.Ids.Wiki) > 0
}

// MergeProducts folds b into a. Manufacturers, Follows, and FollowedBy are
// expected to have already been translated from substrate-local references
// to canonical OrganisationId/ProductId values by the caller (Crystalise),
// dropping any reference that resolves to nothing.
func MergeProducts(a, b Product) Product {
	out := a
	out.Ids.Eans = dedupAppend(a.Ids.Eans, b.Ids.Eans, func(v ids.Ean) [2]string { return [2]string{v.String(), ""} })
	out.Ids.Gtins = dedupAppend(a.Ids.Gtins, b.Ids.Gtins, func(v ids.Gtin) [2]string { return [2]string{v.String(), ""} })
	out.Ids.Wiki = dedupAppend(a.Ids.Wiki, b.Ids.Wiki, func(v ids.WikiId) [2]string { return [2]string{v.String(), ""} })

	out.Names = MergeTexts(a.Names, b.Names)
	out.Descriptions = MergeTexts(a.Descriptions, b.Descriptions)
	out.Images = MergeImages(a.Images, b.Images)
	out.Categories = MergeTexts(a.Categories, b.Categories)
	out.Regions = MergeRegions(a.Regions, b.Regions)
	out.Origins = MergeTexts(a.Origins, b.Origins)

	out.Certifications = MergeCertifications(a.Certifications, b.Certifications)

	out.Manufacturers = dedupAppend(a.Manufacturers, b.Manufacturers, func(v ids.OrganisationId) [2]string { return [2]string{v.String(), ""} })
	out.Follows = dedupAppend(a.Follows, b.Follows, func(v ids.ProductId) [2]string { return [2]string{v.String(), ""} })
	out.FollowedBy = dedupAppend(a.FollowedBy, b.FollowedBy, func(v ids.ProductId) [2]string { return [2]string{v.String(), ""} })
	return out
}
