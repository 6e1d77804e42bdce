// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/model"
)

func TestDecodeTcoEntry(t *testing.T) {
	rec := feeds.DecodeTcoEntry(feeds.TcoEntry{CompanyName: "Dell", WikidataId: "Q1234"})

	assert.Equal(t, "tco:Q1234", rec.InnerId)
	assert.Equal(t, model.KindProducer, rec.Kind)
	assert.Equal(t, []model.Text{{Text: "Dell", Source: model.SourceTco}}, rec.Names)
	assert.Equal(t, []model.Text{{Text: "Q1234", Source: model.SourceTco}}, rec.WikiIds)
	require.NotNil(t, rec.Certifications.Tco)
	assert.Equal(t, "Dell", rec.Certifications.Tco.BrandName)
}
