// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package crystalise

import (
	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
)

// Per-field significance weights, grounded on the original's
// calculate_organisation_significances/calculate_product_significances:
// higher weight means the field is rarer and more informative, so a
// source that asserts it contributes more "significance" to the merged
// record.
const (
	weightVatId       = 100.0
	weightGtin        = 100.0
	weightWikiId      = 10.0
	weightDomain      = 10.0
	weightName        = 1.0
	weightDescription = 1.0
	weightImage       = 1.0
	weightWebsite     = 1.0
	weightOrigin      = 50.0
)

// organisationFromRecord converts one substrate record into a
// single-record Organisation, parsing its typed id fields and computing
// the significance this one record contributes. Records whose id strings
// fail to parse (should not happen post-Condense) silently drop that
// particular alias rather than failing the whole merge.
func organisationFromRecord(rec model.SubstrateRecord) model.Organisation {
	out := model.Organisation{
		Names:          rec.Names,
		Descriptions:   rec.Descriptions,
		Images:         rec.Images,
		Websites:       rec.Websites,
		Origins:        rec.Origins,
		Certifications: rec.Certifications,
	}

	significances := make(map[model.Source]float64)
	add := func(source model.Source, weight float64) { significances[source] += weight }

	for _, t := range rec.VatIds {
		if v, err := ids.ParseVatId(t.Text); err == nil {
			out.Ids.VatIds = append(out.Ids.VatIds, v)
			add(t.Source, weightVatId)
		}
	}
	for _, t := range rec.WikiIds {
		if w, err := ids.ParseWikiId(t.Text); err == nil {
			out.Ids.Wiki = append(out.Ids.Wiki, w)
			add(t.Source, weightWikiId)
		}
	}
	for _, t := range rec.Domains {
		out.Ids.Domains = model.UnionStringSets(out.Ids.Domains, []string{t.Text})
		add(t.Source, weightDomain)
	}
	for _, t := range rec.Names {
		add(t.Source, weightName)
	}
	for _, t := range rec.Descriptions {
		add(t.Source, weightDescription)
	}
	for _, t := range rec.Websites {
		add(t.Source, weightWebsite)
	}
	for _, t := range rec.Origins {
		add(t.Source, weightOrigin)
	}
	for _, im := range rec.Images {
		add(im.Source, weightImage)
	}

	if len(significances) > 0 {
		out.Significances = significances
	}
	return out
}

// productFromRecord converts one substrate record into a single-record
// Product. Manufacturers/Follows/FollowedBy are left empty here: the
// caller resolves those through the finished Coagulate map since they
// name other records, not scalar payload fields.
func productFromRecord(rec model.SubstrateRecord) model.Product {
	out := model.Product{
		Names:          rec.Names,
		Descriptions:   rec.Descriptions,
		Images:         rec.Images,
		Categories:     rec.Categories,
		Regions:        rec.Regions,
		Origins:        rec.Origins,
		Certifications: rec.Certifications,
	}

	for _, t := range rec.Gtins {
		if g, err := ids.ParseGtin(t.Text); err == nil {
			out.Ids.Gtins = append(out.Ids.Gtins, g)
		}
	}
	for _, t := range rec.Eans {
		if e, err := ids.ParseGtin(t.Text); err == nil {
			out.Ids.Eans = append(out.Ids.Eans, e)
		}
	}
	for _, t := range rec.WikiIds {
		if w, err := ids.ParseWikiId(t.Text); err == nil {
			out.Ids.Wiki = append(out.Ids.Wiki, w)
		}
	}
	return out
}
