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
	"github.com/transpaer/condenser/pkg/stages/oxidise"
	"github.com/transpaer/condenser/pkg/storage"
)

// runOxidise executes the 'oxidise' CLI command: transcribes library
// articles and precomputed presentations into the app-facing store,
// independently of the substrate/coagulate pipeline.
func runOxidise(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("oxidise", flag.ExitOnError)
	indexPath := fs.String("index", "library/library.yaml", "Path to the library index YAML")
	articlesDir := fs.String("articles", "library/articles", "Directory of per-topic Markdown article files")
	ftiPath := fs.String("fti", "", "Path to the Fashion Transparency Index YAML (optional)")
	libraryDir := fs.String("library", "app", "Directory to open the library store in, disjoint from --target")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser oxidise [--index <path>] [--articles <dir>] [--fti <path>] [--library <dir>]

Description:
  Reads the library index and one Markdown article per topic, and the
  Fashion Transparency Index ranking if given, writing both into a store
  opened at --library -- a directory separate from crystalise's --target.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.Header("Oxidising library content")
	if err := pathcheck.File("--index", *indexPath); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if err := pathcheck.Dir("--articles", *articlesDir); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if *ftiPath != "" {
		if err := pathcheck.File("--fti", *ftiPath); err != nil {
			errors.FatalError(err, globals.JSON)
		}
	}

	dbStore, err := storage.InitStore(context.Background(), storage.Config{Directory: *libraryDir})
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	defer dbStore.Close()
	store := storage.NewLibraryStore(dbStore)

	result, err := oxidise.Run(context.Background(), oxidise.Config{
		LibraryIndexPath: *indexPath,
		ArticlesDir:      *articlesDir,
		FtiPath:          *ftiPath,
	}, store, globals.logger())
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	succeed(globals, result, "wrote %d library items, %d presentations", result.LibraryItems, result.Presentations)
}
