// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGtin_String(t *testing.T) {
	assert.Equal(t, "00000000002345", NewGtin(2345).String())
}

func TestGtin_Parse(t *testing.T) {
	got, err := ParseGtin("12345678")
	require.NoError(t, err)
	assert.Equal(t, NewGtin(12345678), got)

	_, err = ParseGtin("123456789")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrLength, pe.Kind)

	_, err = ParseGtin("123A5678")
	require.Error(t, err)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrNumber, pe.Kind)
}

func TestGtin_ParseStripsSeparators(t *testing.T) {
	got, err := ParseGtin("1234-5678")
	require.NoError(t, err)
	assert.Equal(t, NewGtin(12345678), got)
}

func TestVatId_Parse(t *testing.T) {
	got, err := ParseVatId("NL12345678")
	require.NoError(t, err)
	assert.Equal(t, NewVatId("NL12345678"), got)

	got, err = ParseVatId("NL123-45 67.8")
	require.NoError(t, err)
	assert.Equal(t, NewVatId("NL12345678"), got)

	_, err = ParseVatId("123")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrLength, pe.Kind)
}

func TestOrganisationId_String(t *testing.T) {
	assert.Equal(t, "Q1234", OrganisationIdFromWiki(NewWikiId(1234)).String())
	assert.Equal(t, "V1234", OrganisationIdFromVat(NewVatId("1234")).String())
}

func TestOrganisationId_Parse(t *testing.T) {
	got, err := ParseOrganisationId("Q12345678")
	require.NoError(t, err)
	assert.Equal(t, OrganisationIdFromWiki(NewWikiId(12345678)), got)

	got, err = ParseOrganisationId("V12345678")
	require.NoError(t, err)
	assert.Equal(t, OrganisationIdFromVat(NewVatId("12345678")), got)

	_, err = ParseOrganisationId("A12345678")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrPrefix, pe.Kind)
}

func TestProductId_String(t *testing.T) {
	assert.Equal(t, "Q1234", ProductIdFromWiki(NewWikiId(1234)).String())
	assert.Equal(t, "G00000000001234", ProductIdFromGtin(NewGtin(1234)).String())
}

func TestProductId_Parse(t *testing.T) {
	got, err := ParseProductId("Q12345678")
	require.NoError(t, err)
	assert.Equal(t, ProductIdFromWiki(NewWikiId(12345678)), got)

	got, err = ParseProductId("G12345678")
	require.NoError(t, err)
	assert.Equal(t, ProductIdFromGtin(NewGtin(12345678)), got)

	_, err = ParseProductId("A12345678")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrPrefix, pe.Kind)
}

func TestOrganisationId_RoundTrip(t *testing.T) {
	ids := []OrganisationId{
		OrganisationIdFromWiki(NewWikiId(42)),
		OrganisationIdFromVat(NewVatId("NL123456789B01")),
	}
	for _, id := range ids {
		parsed, err := ParseOrganisationId(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}

func TestProductId_RoundTrip(t *testing.T) {
	ids := []ProductId{
		ProductIdFromWiki(NewWikiId(42)),
		ProductIdFromGtin(NewGtin(4006381333931)),
	}
	for _, id := range ids {
		parsed, err := ParseProductId(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}
