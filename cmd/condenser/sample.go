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
	"github.com/transpaer/condenser/pkg/stages/sample"
	"github.com/transpaer/condenser/pkg/storage"
)

// runSample executes the 'sample' CLI command: verifies a crystalised
// store resolves every well-known probe to a populated record.
func runSample(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	probesPath := fs.String("probes", "", "Path to the probe list YAML")
	targetDir := fs.String("target", "target", "Directory the KV store was crystalised into")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser sample --probes <path> [--target <dir>]

Description:
  Resolves every (lookup, key, expected-field) probe in --probes against
  the store at --target and reports pass/fail for each.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *probesPath == "" {
		errors.FatalError(errors.NewConfigError("missing --probes", "sample needs a probe list", "pass --probes <path>", nil), globals.JSON)
	}
	if err := pathcheck.File("--probes", *probesPath); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if err := pathcheck.Dir("--target", *targetDir); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	ui.Header("Sampling crystalised store")
	probes, err := sample.LoadProbes(*probesPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	dbStore, err := storage.OpenStore(storage.Config{Directory: *targetDir})
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	defer dbStore.Close()
	store := storage.NewAppStore(dbStore)

	result, err := sample.Run(context.Background(), probes, store)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	succeed(globals, result, "%d of %d probes passed", result.Passed, result.Passed+result.Failed)
}
