// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transpaer/condenser/pkg/utils"
)

func TestDisambiguateName(t *testing.T) {
	assert.Equal(t, "acme corp", utils.DisambiguateName("  Acme Corp  "))
	assert.Equal(t, "", utils.DisambiguateName("   "))
}

func TestFormatElapsedTime(t *testing.T) {
	assert.Equal(t, "0h 0m 5s", utils.FormatElapsedTime(5*time.Second))
	assert.Equal(t, "1h 2m 3s", utils.FormatElapsedTime(time.Hour+2*time.Minute+3*time.Second))
}
