// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import (
	"fmt"

	"github.com/transpaer/condenser/pkg/model"
)

// DecodeBCorpRow decodes one B Corp registry CSV row into an organisation
// substrate record, grounded on the "company_id, company_name,
// current_status, description, date_certified, country, website" columns
// of the B Corp dataset. Only certified companies carry the certification;
// de-certified rows still yield a bare organisation record so cross-source
// name matching keeps working for a company that has since lost the mark.
func DecodeBCorpRow(d *RowDecoder, row []string) (model.SubstrateRecord, error) {
	companyID, err := d.RequireField(row, "company_id")
	if err != nil {
		return model.SubstrateRecord{}, err
	}
	if companyID == "" {
		return model.SubstrateRecord{}, fmt.Errorf("bcorp row missing company_id")
	}

	rec := model.SubstrateRecord{
		InnerId: "bcorp:" + companyID,
		Kind:    model.KindProducer,
		Regions: model.UnknownRegions(),
	}

	if name := d.Field(row, "company_name"); name != "" {
		rec.Names = append(rec.Names, model.Text{Text: name, Source: model.SourceBCorp})
	}
	if desc := d.Field(row, "description"); desc != "" {
		rec.Descriptions = append(rec.Descriptions, model.Text{Text: desc, Source: model.SourceBCorp})
	}
	if website := d.Field(row, "website"); website != "" {
		rec.Websites = append(rec.Websites, model.Text{Text: website, Source: model.SourceBCorp})
		rec.Domains = append(rec.Domains, model.Text{Text: model.NormalizeDomain(website), Source: model.SourceBCorp})
	}
	if country := d.Field(row, "country"); country != "" {
		rec.Origins = append(rec.Origins, model.Text{Text: country, Source: model.SourceBCorp})
	}

	if d.Field(row, "current_status") == "certified" {
		rec.Certifications.BCorp = &model.BCorpCert{ReportURL: d.Field(row, "website")}
	}

	return rec, nil
}
