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
	"github.com/transpaer/condenser/internal/ui"
	"github.com/transpaer/condenser/pkg/stages/extract"
)

// runExtract executes the 'extract' CLI command: a single pass over the
// Wikidata dump seeding the manufacturer/class id cache Filter and
// Condense need.
func runExtract(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	origin := fs.String("origin", "", "Path to the Wikidata graph dump")
	cacheDir := fs.String("cache", "cache", "Directory to write wikidata_cache.json into")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser extract --origin <dump> [--cache <dir>]

Description:
  Scans the Wikidata graph dump once, collecting every manufacturer id and
  every instance-of/subclass-of class id seen. The result seeds the
  Advisor used by filter and condense.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *origin == "" {
		errors.FatalError(errors.NewConfigError("missing --origin", "extract needs the Wikidata dump path", "pass --origin <path>", nil), globals.JSON)
	}
	if err := pathcheck.File("--origin", *origin); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	ui.Header("Extracting Wikidata id caches")
	cachePath := filepath.Join(*cacheDir, "wikidata_cache.json")

	progress := NewProgressConfig(globals)
	err := WithSpinner(progress, "extract", func() error {
		return extract.Run(context.Background(), *origin, cachePath)
	})
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	succeed(globals, struct {
		CachePath string `json:"cache_path"`
	}{cachePath}, "wrote %s", cachePath)
}
