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
	"github.com/transpaer/condenser/pkg/stages/coagulate"
	"github.com/transpaer/condenser/pkg/stages/crystalise"
	"github.com/transpaer/condenser/pkg/storage"
	"github.com/transpaer/condenser/pkg/substrate"
)

// runCrystalise executes the 'crystalise' CLI command: merges every
// substrate record into its canonical Organisation/Product and
// materialises every lookup bucket into the target KV store.
func runCrystalise(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("crystalise", flag.ExitOnError)
	substrateDir := fs.String("substrate", "substrate", "Directory of condensed substrate files")
	coagulatePath := fs.String("coagulate", "coagulate/coagulate.yaml", "Path to the coagulate map")
	targetDir := fs.String("target", "target", "Directory to open the KV store in")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser crystalise [--substrate <dir>] [--coagulate <path>] [--target <dir>]

Description:
  Merges every substrate record mapped to the same canonical id into one
  stored Organisation or Product, resolves cross-references through the
  coagulate map, and populates every lookup bucket in --target.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.Header("Crystalising substrates into the target store")
	if err := pathcheck.Dir("--substrate", *substrateDir); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if err := pathcheck.File("--coagulate", *coagulatePath); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	subs, report, err := substrate.Prepare(*substrateDir)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	report.Log(globals.logger().Warn)

	coag, err := coagulate.Load(*coagulatePath, subs)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	dbStore, err := storage.InitStore(context.Background(), storage.Config{Directory: *targetDir})
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	defer dbStore.Close()
	store := storage.NewAppStore(dbStore)

	result, err := crystalise.Run(context.Background(), subs, coag, store, globals.logger())
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	succeed(globals, result, "crystalised %d organisations, %d products", result.Organisations, result.Products)
}
