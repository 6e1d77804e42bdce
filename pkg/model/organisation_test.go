// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/ids"
)

func TestOrganisation_HasId(t *testing.T) {
	assert.False(t, model.Organisation{}.HasId())

	withId := model.Organisation{Ids: model.OrganisationIds{Wiki: []ids.WikiId{ids.NewWikiId(42)}}}
	assert.True(t, withId.HasId())
}

func TestMergeOrganisations_UnionsIdsAndNames(t *testing.T) {
	vat, err := ids.ParseVatId("NL123456789")
	require.NoError(t, err)

	a := model.Organisation{
		Ids:   model.OrganisationIds{VatIds: []ids.VatId{vat}},
		Names: []model.Text{{Text: "Acme", Source: model.SourceWikidata}},
		Certifications: model.Certifications{
			BCorp: &model.BCorpCert{ReportURL: "report-a"},
		},
	}
	b := model.Organisation{
		Ids:   model.OrganisationIds{Domains: []string{"acme.com"}},
		Names: []model.Text{{Text: "Acme Inc", Source: model.SourceOpenFoodFacts}},
		Certifications: model.Certifications{
			Tco: &model.TcoCert{BrandName: "Acme"},
		},
	}

	merged := model.MergeOrganisations(a, b)

	assert.Equal(t, []ids.VatId{vat}, merged.Ids.VatIds)
	assert.Equal(t, []string{"acme.com"}, merged.Ids.Domains)
	assert.Len(t, merged.Names, 2)
	assert.Equal(t, "report-a", merged.Certifications.BCorp.ReportURL)
	assert.Equal(t, "Acme", merged.Certifications.Tco.BrandName)
}

func TestMergeOrganisations_SignificancesTakeMax(t *testing.T) {
	a := model.Organisation{Significances: map[model.Source]float64{model.SourceWikidata: 0.3}}
	b := model.Organisation{Significances: map[model.Source]float64{model.SourceWikidata: 0.9}}

	merged := model.MergeOrganisations(a, b)
	assert.InDelta(t, 0.9, merged.Significances[model.SourceWikidata], 0.0001)
}
