// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transpaer/condenser/pkg/model"
)

func TestNormalizeDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.Acme.com/about": "acme.com",
		"http://acme.com":            "acme.com",
		"www.acme.com":               "acme.com",
		"ACME.COM":                   "acme.com",
		"acme.com/path/to/page":      "acme.com",
	}
	for in, want := range cases {
		assert.Equal(t, want, model.NormalizeDomain(in), in)
	}
}

func TestSubstrateRecord_ZeroValue(t *testing.T) {
	var r model.SubstrateRecord
	assert.Empty(t, r.InnerId)
	assert.Equal(t, model.RegionsUnknown, r.Regions.Kind, "zero-value Regions defaults to Unknown, not World")
}
