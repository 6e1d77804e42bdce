// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/pathcheck"
	"github.com/transpaer/condenser/internal/ui"
	"github.com/transpaer/condenser/pkg/stages/coagulate"
	"github.com/transpaer/condenser/pkg/substrate"
)

// runCoagulate executes the 'coagulate' CLI command: resolves every
// substrate record's identity into a canonical id, persisted as a
// reusable map.
func runCoagulate(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("coagulate", flag.ExitOnError)
	substrateDir := fs.String("substrate", "substrate", "Directory of condensed substrate files")
	coagulatePath := fs.String("coagulate", "coagulate/coagulate.yaml", "Path to write the coagulate map to")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: condenser coagulate [--substrate <dir>] [--coagulate <path>]

Description:
  Union-finds every substrate record's shared identifiers into connected
  components and assigns each one canonical OrganisationId or ProductId,
  writing the bidirectional mapping to --coagulate.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.Header("Coagulating substrate identities")
	if err := pathcheck.Dir("--substrate", *substrateDir); err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if err := os.MkdirAll(filepath.Dir(*coagulatePath), 0o755); err != nil {
		errors.FatalError(errors.NewIOError("cannot create --coagulate's parent directory", err.Error(), "check the path is writable", err), globals.JSON)
	}

	subs, report, err := substrate.Prepare(*substrateDir)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	logWarn := globals.logger().Warn
	report.Log(logWarn)

	coag, err := coagulate.Build(subs)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if err := coag.Save(*coagulatePath, subs); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	succeed(globals, struct {
		CoagulatePath string `json:"coagulate_path"`
		Substrates    int    `json:"substrates"`
	}{*coagulatePath, len(subs.List())}, "wrote %s", *coagulatePath)
}
