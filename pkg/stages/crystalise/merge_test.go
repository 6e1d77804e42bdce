// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package crystalise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/model"
)

func TestOrganisationFromRecord_ParsesIdsAndWeighsSignificance(t *testing.T) {
	rec := model.SubstrateRecord{
		InnerId: "Q1",
		Kind:    model.KindProducer,
		Names:   []model.Text{{Text: "Acme", Source: model.SourceWikidata}},
		VatIds:  []model.Text{{Text: "NL123456789", Source: model.SourceBCorp}},
		WikiIds: []model.Text{{Text: "Q1", Source: model.SourceWikidata}},
		Domains: []model.Text{{Text: "acme.example", Source: model.SourceWikidata}},
	}

	org := organisationFromRecord(rec)
	require.Len(t, org.Ids.Wiki, 1)
	assert.Equal(t, "Q1", org.Ids.Wiki[0].String())
	require.Len(t, org.Ids.VatIds, 1)
	assert.Equal(t, []string{"acme.example"}, org.Ids.Domains)

	assert.Equal(t, weightVatId, org.Significances[model.SourceBCorp])
	assert.Equal(t, weightWikiId+weightDomain+weightName, org.Significances[model.SourceWikidata])
}

func TestOrganisationFromRecord_DropsUnparseableIds(t *testing.T) {
	rec := model.SubstrateRecord{
		InnerId: "bad",
		Kind:    model.KindProducer,
		VatIds:  []model.Text{{Text: "xy", Source: model.SourceBCorp}},
	}
	org := organisationFromRecord(rec)
	assert.Empty(t, org.Ids.VatIds)
	assert.False(t, org.HasId())
}

func TestProductFromRecord_ParsesGtinAndEanSeparately(t *testing.T) {
	rec := model.SubstrateRecord{
		InnerId: "Q2",
		Kind:    model.KindProduct,
		Gtins:   []model.Text{{Text: "00000000002345", Source: model.SourceWikidata}},
		Eans:    []model.Text{{Text: "4006381333931", Source: model.SourceOpenFoodFacts}},
	}
	p := productFromRecord(rec)
	require.Len(t, p.Ids.Gtins, 1)
	require.Len(t, p.Ids.Eans, 1)
	assert.Equal(t, "00000000002345", p.Ids.Gtins[0].String())
}
