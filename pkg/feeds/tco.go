// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import "github.com/transpaer/condenser/pkg/model"

// TcoEntry mirrors one entry of the TCO Certified YAML listing: a company
// name under the "tco" key and its Wikidata id under "wiki".
type TcoEntry struct {
	CompanyName string `yaml:"tco"`
	WikidataId  string `yaml:"wiki"`
}

// DecodeTcoEntry turns one TcoEntry into an organisation substrate record
// carrying the tco certification.
func DecodeTcoEntry(e TcoEntry) model.SubstrateRecord {
	rec := model.SubstrateRecord{
		InnerId: "tco:" + e.WikidataId,
		Kind:    model.KindProducer,
		Regions: model.UnknownRegions(),
		Certifications: model.Certifications{
			Tco: &model.TcoCert{BrandName: e.CompanyName},
		},
	}
	if e.CompanyName != "" {
		rec.Names = append(rec.Names, model.Text{Text: e.CompanyName, Source: model.SourceTco})
	}
	if e.WikidataId != "" {
		rec.WikiIds = append(rec.WikiIds, model.Text{Text: e.WikidataId, Source: model.SourceTco})
	}
	return rec
}
