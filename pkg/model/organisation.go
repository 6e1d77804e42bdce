// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model

import "github.com/transpaer/condenser/pkg/ids"

// OrganisationIds is the set of identifiers a canonical Organisation
// answers to. At least one of the three lists is non-empty: every
// Organisation has an id.
type OrganisationIds struct {
	VatIds  []ids.VatId  `json:"vat_ids,omitempty"`
	Wiki    []ids.WikiId `json:"wiki,omitempty"`
	Domains []string     `json:"domains,omitempty"`
}

// Organisation is the canonical, stored record materialised once per
// connected component during Crystalise. Domains are always normalised
// (lowercased, scheme and "www." stripped) before being stored.
type Organisation struct {
	// CanonicalId is the id Coagulate assigned this connected component;
	// it need not itself appear in Ids (e.g. a Vat-only component keeps
	// its VatId here while Ids.VatIds lists every Vat alias observed).
	CanonicalId ids.OrganisationId `json:"canonical_id"`

	Ids          OrganisationIds `json:"ids"`
	Names        []Text          `json:"names,omitempty"`
	Descriptions []Text          `json:"descriptions,omitempty"`
	Images       []Image         `json:"images,omitempty"`
	Websites     []Text          `json:"websites,omitempty"`
	Origins      []Text          `json:"origins,omitempty"`

	Certifications Certifications `json:"certifications"`

	// Significances records, per source, how strongly that source backs
	// this organisation's existence; used by Sample's diagnostic reports.
	Significances map[Source]float64 `json:"significances,omitempty"`
}

// HasId reports whether the invariant "at least one id exists" holds.
func (o Organisation) HasId() bool {
	return len(o.Ids.VatIds) > 0 || len(o.Ids.Wiki) > 0 || len(o.Ids.Domains) > 0
}

// MergeOrganisations folds b into a, producing the record that results from
// unioning every field. The two inputs are assumed to already share a
// canonical Id (Crystalise never merges across distinct components).
func MergeOrganisations(a, b Organisation) Organisation {
	out := a
	out.Ids.VatIds = dedupAppend(a.Ids.VatIds, b.Ids.VatIds, func(v ids.VatId) [2]string { return [2]string{v.String(), ""} })
	out.Ids.Wiki = dedupAppend(a.Ids.Wiki, b.Ids.Wiki, func(v ids.WikiId) [2]string { return [2]string{v.String(), ""} })
	out.Ids.Domains = UnionStringSets(a.Ids.Domains, b.Ids.Domains)

	out.Names = MergeTexts(a.Names, b.Names)
	out.Descriptions = MergeTexts(a.Descriptions, b.Descriptions)
	out.Images = MergeImages(a.Images, b.Images)
	out.Websites = MergeTexts(a.Websites, b.Websites)
	out.Origins = MergeTexts(a.Origins, b.Origins)

	out.Certifications = MergeCertifications(a.Certifications, b.Certifications)

	out.Significances = mergeSignificances(a.Significances, b.Significances)
	return out
}

func mergeSignificances(a, b map[Source]float64) map[Source]float64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[Source]float64, len(a)+len(b))
	for s, w := range a {
		out[s] = w
	}
	for s, w := range b {
		if w > out[s] {
			out[s] = w
		}
	}
	return out
}
