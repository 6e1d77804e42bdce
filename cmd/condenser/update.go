// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/pathcheck"
	"github.com/transpaer/condenser/internal/ui"
	"github.com/transpaer/condenser/pkg/stages/condense"
	"github.com/transpaer/condenser/pkg/stages/update"
)

// runUpdate executes the 'update' CLI command: regenerates the Open Food
// Facts country-tag translation table from a fresh export.
func runUpdate(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	input := fs.String("input", "", "Path to a fresh Open Food Facts export")
	countriesPath := fs.String("countries", "", "Path to the current country-tag translation table")
	outputPath := fs.String("output", "", "Path to write the refreshed country table to")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser update --input <path> --countries <path> --output <path>

Description:
  Scans a fresh Open Food Facts export for every manufacturing-place tag
  in use, counts occurrences, and writes a refreshed country-tag table
  marking which tags the current translation already resolves.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *input == "" || *countriesPath == "" || *outputPath == "" {
		errors.FatalError(errors.NewConfigError("missing flags", "update needs --input, --countries and --output", "pass all three paths", nil), globals.JSON)
	}
	if err := pathcheck.File("--input", *input); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if err := pathcheck.File("--countries", *countriesPath); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	ui.Header("Updating Open Food Facts country table")
	countries, err := condense.LoadCountryTagTranslation(*countriesPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	result, err := update.Run(context.Background(), *input, *outputPath, countries)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	succeed(globals, result, "found %d countries, %d entries had none, %d%% of tag uses assigned",
		result.Countries, result.EmptyCount, result.AssignedPercent)
}
