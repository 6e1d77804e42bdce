// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import (
	"fmt"

	"github.com/transpaer/condenser/pkg/model"
)

// DecodeEuEcolabelRow decodes one EU Ecolabel registry row (semicolon
// delimited: product_or_service, licence_number, group_name,
// code_type/code_value, product_or_service_name, decision, expiration_date,
// company_name, company_country, vat_number, extract_date). A "Product"
// row yields a product record tagged with its company's VAT id; any other
// row yields the company as an organisation.
func DecodeEuEcolabelRow(d *RowDecoder, row []string) (model.SubstrateRecord, error) {
	licence, err := d.RequireField(row, "licence_number")
	if err != nil {
		return model.SubstrateRecord{}, err
	}
	if licence == "" {
		return model.SubstrateRecord{}, fmt.Errorf("eu_ecolabel row missing licence_number")
	}

	isProduct := d.Field(row, "product_or_service") == "Product"

	rec := model.SubstrateRecord{
		InnerId: "eu_ecolabel:" + licence,
		Regions: model.UnknownRegions(),
	}

	vat := d.Field(row, "vat_number")

	if isProduct {
		rec.Kind = model.KindProduct
		if name := d.Field(row, "product_or_service_name"); name != "" {
			rec.Names = append(rec.Names, model.Text{Text: name, Source: model.SourceEuEcolabel})
		}
		if group := d.Field(row, "group_name"); group != "" {
			rec.Categories = append(rec.Categories, model.Text{Text: group, Source: model.SourceEuEcolabel})
		}
		if vat != "" {
			rec.VatIds = append(rec.VatIds, model.Text{Text: vat, Source: model.SourceEuEcolabel})
		}
	} else {
		rec.Kind = model.KindProducer
		if name := d.Field(row, "company_name"); name != "" {
			rec.Names = append(rec.Names, model.Text{Text: name, Source: model.SourceEuEcolabel})
		}
		if vat != "" {
			rec.VatIds = append(rec.VatIds, model.Text{Text: vat, Source: model.SourceEuEcolabel})
		}
	}

	if country := d.Field(row, "company_country"); country != "" {
		rec.Origins = append(rec.Origins, model.Text{Text: country, Source: model.SourceEuEcolabel})
	}

	rec.Certifications.EuEcolabel = &model.EuEcolabelCert{MatchAccuracy: 1.0}

	return rec, nil
}
