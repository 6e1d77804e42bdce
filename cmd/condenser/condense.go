// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/pathcheck"
	"github.com/transpaer/condenser/pkg/stages/condense"
)

// condenseSourceNames lists every source kind condense accepts as its
// first positional argument, matching the Source enumeration.
var condenseSourceNames = []string{"bcorp", "eu", "tco", "fti", "off", "ofr", "wiki"}

// runCondense executes the 'condense' CLI command: converts one source's
// raw download into a substrate file.
func runCondense(args []string, globals GlobalFlags) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: condenser condense <source> [options]\n\nSources: %v\n", condenseSourceNames)
		os.Exit(1)
	}
	source := args[0]
	rest := args[1:]

	fs := flag.NewFlagSet("condense "+source, flag.ExitOnError)
	input := fs.String("input", "", "Path to the source's raw download")
	substrateDir := fs.String("substrate", "substrate", "Directory to write the substrate file into")
	cacheDir := fs.String("cache", "cache", "Directory holding cache files (filtered Wikidata dump, country table)")
	countriesPath := fs.String("countries", "", "Path to the Open Food Facts country-tag translation table (off only)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser condense %s --input <path> [--substrate <dir>]

Description:
  Converts a single source's raw download into a substrate file of
  line-delimited model.SubstrateRecord values, named "<source>.jsonl"
  under --substrate.

Options:
`, source)
		fs.PrintDefaults()
	}

	if err := fs.Parse(rest); err != nil {
		os.Exit(1)
	}

	outputPath := filepath.Join(*substrateDir, source+".jsonl")
	ctx := context.Background()

	var err error
	switch source {
	case "bcorp":
		err = requireInput(*input, globals, func() error { return condense.RunBCorp(ctx, *input, outputPath) })
	case "eu":
		err = requireInput(*input, globals, func() error { return condense.RunEuEcolabel(ctx, *input, outputPath) })
	case "tco":
		err = requireInput(*input, globals, func() error { return condense.RunTco(*input, outputPath) })
	case "fti":
		err = requireInput(*input, globals, func() error { return condense.RunFti(*input, outputPath) })
	case "ofr":
		err = requireInput(*input, globals, func() error { return condense.RunOpenFoodRepo(ctx, *input, outputPath) })
	case "wiki":
		if *input == "" {
			*input = filepath.Join(*cacheDir, "wikidata_filtered.jsonl")
		}
		if pathErr := pathcheck.File("--input", *input); pathErr != nil {
			errors.FatalError(pathErr, globals.JSON)
		}
		err = condense.RunWikidata(ctx, *input, outputPath)
	case "off":
		if *countriesPath == "" {
			errors.FatalError(errors.NewConfigError("missing --countries", "condensing Open Food Facts needs the country-tag translation table", "pass --countries <path>", nil), globals.JSON)
		}
		if pathErr := pathcheck.File("--countries", *countriesPath); pathErr != nil {
			errors.FatalError(pathErr, globals.JSON)
		}
		countries, loadErr := condense.LoadCountryTagTranslation(*countriesPath)
		if loadErr != nil {
			errors.FatalError(loadErr, globals.JSON)
		}
		err = requireInput(*input, globals, func() error { return condense.RunOpenFoodFacts(ctx, *input, outputPath, countries) })
	default:
		fmt.Fprintf(os.Stderr, "Unknown condense source %q. Sources: %v\n", source, condenseSourceNames)
		os.Exit(1)
	}

	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	succeed(globals, struct {
		Source     string `json:"source"`
		OutputPath string `json:"output_path"`
	}{source, outputPath}, "wrote %s", outputPath)
}

func requireInput(input string, globals GlobalFlags, fn func() error) error {
	if input == "" {
		errors.FatalError(errors.NewConfigError("missing --input", "this source needs its raw download path", "pass --input <path>", nil), globals.JSON)
	}
	if err := pathcheck.File("--input", input); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	return fn()
}
