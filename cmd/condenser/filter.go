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
	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/stages/extract"
	"github.com/transpaer/condenser/pkg/stages/filter"
)

// runFilter executes the 'filter' CLI command: a second pass over the
// Wikidata dump that keeps only the lines condense can use.
func runFilter(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	origin := fs.String("origin", "", "Path to the Wikidata graph dump")
	cacheDir := fs.String("cache", "cache", "Directory holding wikidata_cache.json and the filtered dump")
	substrateDir := fs.String("substrate", "substrate", "Directory of already-condensed, non-Wikidata substrate files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser filter --origin <dump> [--cache <dir>] [--substrate <dir>]

Description:
  Re-reads the Wikidata dump, keeping only lines that are themselves a
  product/organisation, were seen as a manufacturer by extract, or are
  referenced by a substrate file condensed from another source. Every
  non-Wikidata source must be condensed before running filter.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *origin == "" {
		errors.FatalError(errors.NewConfigError("missing --origin", "filter needs the Wikidata dump path", "pass --origin <path>", nil), globals.JSON)
	}
	if err := pathcheck.File("--origin", *origin); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	ui.Header("Filtering Wikidata dump")
	cachePath := filepath.Join(*cacheDir, "wikidata_cache.json")
	if err := pathcheck.File("--cache", cachePath); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	cache, err := extract.LoadCache(cachePath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if err := pathcheck.Dir("--substrate", *substrateDir); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	advisor := filter.NewAdvisor(cache)
	if err := advisor.LoadSubstrates(*substrateDir, model.SourceWikidata); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	filteredPath := filepath.Join(*cacheDir, "wikidata_filtered.jsonl")
	progress := NewProgressConfig(globals)
	runErr := WithSpinner(progress, "filter", func() error {
		return filter.Run(context.Background(), *origin, filteredPath, advisor)
	})
	if runErr != nil {
		errors.FatalError(runErr, globals.JSON)
	}

	succeed(globals, struct {
		FilteredPath string `json:"filtered_path"`
	}{filteredPath}, "wrote %s", filteredPath)
}
