// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/output"
	"github.com/transpaer/condenser/internal/ui"
)

// succeed reports a subcommand's outcome: a pretty-printed JSON encoding
// of result when --json is set, the human-readable message otherwise.
func succeed(globals GlobalFlags, result any, format string, args ...any) {
	if globals.JSON {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, globals.JSON)
		}
		return
	}
	ui.Successf(format, args...)
}
