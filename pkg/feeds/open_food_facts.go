// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import (
	"strings"

	"github.com/transpaer/condenser/pkg/model"
)

// CountryTagTranslation maps an Open Food Facts country tag (e.g.
// "en:france") to the ISO-3166 alpha-2 code Regions stores.
type CountryTagTranslation map[string]string

// DecodeOpenFoodFactsRow decodes one Open Food Facts CSV row (tab
// delimited: code, url, product_name, ..., brands, categories_tags, ...)
// into a product record plus the brand organisation records implied by
// its keyword-split brand list.
func DecodeOpenFoodFactsRow(d *RowDecoder, row []string, countries CountryTagTranslation) (model.SubstrateRecord, []model.SubstrateRecord) {
	code := d.Field(row, "code")
	product := model.SubstrateRecord{
		InnerId: "off:" + code,
		Kind:    model.KindProduct,
		Regions: model.UnknownRegions(),
	}

	if code != "" {
		product.Gtins = append(product.Gtins, model.Text{Text: code, Source: model.SourceOpenFoodFacts})
	}
	if name := d.Field(row, "product_name"); name != "" {
		product.Names = append(product.Names, model.Text{Text: name, Source: model.SourceOpenFoodFacts})
	}
	if img := d.Field(row, "image_url"); img != "" {
		product.Images = append(product.Images, model.Image{Image: img, Source: model.SourceOpenFoodFacts})
	}

	var categories []string
	if tags := d.Field(row, "categories_tags"); tags != "" {
		categories = splitCommaList(tags)
	}
	for _, c := range categories {
		product.Categories = append(product.Categories, model.Text{Text: c, Source: model.SourceOpenFoodFacts})
	}

	if tags := d.Field(row, "manufacturing_places_tags"); tags != "" {
		regionCodes := translateCountryTags(splitCommaList(tags), countries)
		if len(regionCodes) > 0 {
			product.Regions = model.RegionList(regionCodes...)
		}
	}

	brands := extractBrandLabels(d.Field(row, "brand_owner"), d.Field(row, "brands"))

	var orgs []model.SubstrateRecord
	for _, brand := range brands {
		orgs = append(orgs, model.SubstrateRecord{
			InnerId: "off-brand:" + brand,
			Kind:    model.KindProducer,
			Regions: model.UnknownRegions(),
			Names:   []model.Text{{Text: brand, Source: model.SourceOpenFoodFacts}},
		})
	}

	return product, orgs
}

// extractBrandLabels mirrors Record::extract_labels: the brand_owner field
// plus every comma-split, trimmed, non-empty entry of brands, deduplicated.
func extractBrandLabels(brandOwner, brands string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	add(brandOwner)
	for _, b := range strings.Split(brands, ",") {
		add(b)
	}
	return out
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func translateCountryTags(tags []string, countries CountryTagTranslation) []string {
	var codes []string
	for _, tag := range tags {
		if code, ok := countries[tag]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
