// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import "github.com/transpaer/condenser/pkg/model"

// OpenFoodRepoImage is one entry of an OpenFoodRepoEntry's images list.
type OpenFoodRepoImage struct {
	Large string `json:"large"`
}

// OpenFoodRepoEntry mirrors one JSON-lines record fetched from the Open
// Food Repo API and cached locally: paginated HTTP ingestion writes one
// JSON-lines file.
type OpenFoodRepoEntry struct {
	Id                      int64               `json:"id"`
	Barcode                 string              `json:"barcode"`
	Country                 string              `json:"country"`
	Images                  []OpenFoodRepoImage `json:"images"`
	NameTranslations        map[string]string   `json:"name_translations"`
	DisplayNameTranslations map[string]string   `json:"display_name_translations"`
}

// DecodeOpenFoodRepoEntry turns one OpenFoodRepoEntry into a product
// substrate record keyed by its barcode (GTIN/EAN).
func DecodeOpenFoodRepoEntry(e OpenFoodRepoEntry) model.SubstrateRecord {
	rec := model.SubstrateRecord{
		InnerId: "ofr:" + e.Barcode,
		Kind:    model.KindProduct,
		Regions: model.UnknownRegions(),
	}
	if e.Barcode != "" {
		rec.Gtins = append(rec.Gtins, model.Text{Text: e.Barcode, Source: model.SourceOpenFoodRepo})
	}
	if name, ok := e.DisplayNameTranslations["en"]; ok && name != "" {
		rec.Names = append(rec.Names, model.Text{Text: name, Source: model.SourceOpenFoodRepo})
	} else if name, ok := e.NameTranslations["en"]; ok && name != "" {
		rec.Names = append(rec.Names, model.Text{Text: name, Source: model.SourceOpenFoodRepo})
	}
	for _, img := range e.Images {
		if img.Large != "" {
			rec.Images = append(rec.Images, model.Image{Image: img.Large, Source: model.SourceOpenFoodRepo})
		}
	}
	if e.Country != "" {
		rec.Origins = append(rec.Origins, model.Text{Text: e.Country, Source: model.SourceOpenFoodRepo})
	}
	return rec
}
