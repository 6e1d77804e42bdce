// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transpaer/condenser/pkg/model"
)

func TestMonotonicOr(t *testing.T) {
	assert.True(t, model.MonotonicOr(true, false))
	assert.True(t, model.MonotonicOr(false, true))
	assert.False(t, model.MonotonicOr(false, false))
}

func TestMaxOption(t *testing.T) {
	three, five := 3, 5
	assert.Equal(t, &five, model.MaxOption(&three, &five))
	assert.Equal(t, &five, model.MaxOption(&five, &three))
	assert.Equal(t, &three, model.MaxOption(&three, (*int)(nil)))
	assert.Equal(t, &three, model.MaxOption((*int)(nil), &three))
}

func TestUnionStringSets(t *testing.T) {
	got := model.UnionStringSets([]string{"b", "a"}, []string{"a", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestMapUnionByKey_APrefersOnCollision(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 99, "z": 3}

	got := model.MapUnionByKey(a, b)
	assert.Equal(t, map[string]int{"x": 1, "y": 2, "z": 3}, got)
}

func TestTryCombineDisjointMaps(t *testing.T) {
	a := map[string]int{"x": 1}
	b := map[string]int{"y": 2}

	merged, _, collided := model.TryCombineDisjointMaps(a, b)
	assert.False(t, collided)
	assert.Equal(t, map[string]int{"x": 1, "y": 2}, merged)

	_, key, collided := model.TryCombineDisjointMaps(a, map[string]int{"x": 5})
	assert.True(t, collided)
	assert.Equal(t, "x", key)
}
