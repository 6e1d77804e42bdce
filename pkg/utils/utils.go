// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package utils holds small helpers shared across stages that don't
// belong to any one package's domain.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// DisambiguateName trims and lower-cases a name so the same entity
// spelled with different casing or surrounding whitespace compares equal.
// Used by Crystalise's keyword tokenizer.
func DisambiguateName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FormatElapsedTime renders a duration as "Nh Nm Ns" for end-of-run
// summaries.
func FormatElapsedTime(d time.Duration) string {
	seconds := int64(d.Seconds())
	hours := seconds / 3600
	minutes := (seconds / 60) % 60
	secs := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
}
