// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import "github.com/transpaer/condenser/pkg/model"

// FtiEntry mirrors one entry of the Fashion Transparency Index YAML
// listing: a company name, its Wikidata id, and an integer score 0..100.
type FtiEntry struct {
	Name       string `yaml:"name"`
	WikidataId string `yaml:"wiki"`
	Score      int    `yaml:"score"`
}

// DecodeFtiEntry turns one FtiEntry into an organisation substrate record
// carrying the fti certification. Duplicate WikidataId across entries is
// the caller's responsibility to reject.
func DecodeFtiEntry(e FtiEntry) model.SubstrateRecord {
	rec := model.SubstrateRecord{
		InnerId: "fti:" + e.WikidataId,
		Kind:    model.KindProducer,
		Regions: model.UnknownRegions(),
		Certifications: model.Certifications{
			Fti: &model.FtiCert{Score: e.Score},
		},
	}
	if e.Name != "" {
		rec.Names = append(rec.Names, model.Text{Text: e.Name, Source: model.SourceFashionTransparencyIndex})
	}
	if e.WikidataId != "" {
		rec.WikiIds = append(rec.WikiIds, model.Text{Text: e.WikidataId, Source: model.SourceFashionTransparencyIndex})
	}
	return rec
}
