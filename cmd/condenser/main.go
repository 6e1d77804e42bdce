// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package main implements the condenser CLI: the operator-facing
// entrypoint that drives each pipeline stage as its own subcommand, in
// the order the stage table requires.
//
// Usage:
//
//	condenser extract --origin <dump> --cache <dir>
//	condenser filter --origin <dump> --cache <dir> --substrate <dir>
//	condenser condense <source> --input <path> --substrate <dir>
//	condenser coagulate --substrate <dir> --coagulate <path>
//	condenser crystalise --substrate <dir> --coagulate <path> --target <dir>
//	condenser oxidise --library <dir> --articles <dir> --index <path> --fti <path>
//	condenser sample --probes <path> --target <dir>
//	condenser update --input <path> --countries <path> --output <path>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/transpaer/condenser/internal/logging"
	"github.com/transpaer/condenser/internal/ui"
	"github.com/transpaer/condenser/pkg/utils"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds the flags every subcommand honours regardless of its
// own arguments.
type GlobalFlags struct {
	JSON    bool
	Quiet   bool
	NoColor bool
	Verbose int
}

func (g GlobalFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if g.Verbose > 0 {
		level = slog.LevelDebug
	}
	if g.Quiet {
		level = slog.LevelWarn
	}
	return logging.New(logging.WithLevel(level), logging.WithJSON(g.JSON))
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		jsonOutput  = flag.Bool("json", false, "Emit machine-readable JSON output")
		quiet       = flag.Bool("quiet", false, "Suppress non-essential output")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
		verbose     = flag.Int("verbose", 0, "Increase log verbosity")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `condenser - sustainability data condensation pipeline

Usage:
  condenser <command> [options]

Commands:
  extract      Seed manufacturer/class id caches from a Wikidata dump
  filter       Drop Wikidata lines condense has no use for
  condense     Convert one source's raw download into a substrate file
  coagulate    Resolve every substrate record's identity into canonical ids
  crystalise   Merge substrates into the queryable store
  oxidise      Transcribe library articles and presentations into the app store
  sample       Verify a crystalised store resolves its well-known probes
  update       Regenerate the Open Food Facts country-tag table

Global Options:
  --json       Emit machine-readable JSON output
  --quiet      Suppress non-essential output
  --no-color   Disable colored output
  --verbose    Increase log verbosity
  --version    Show version and exit

Run "condenser <command> --help" for a command's own options.
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("condenser version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	globals := GlobalFlags{JSON: *jsonOutput, Quiet: *quiet, NoColor: *noColor, Verbose: *verbose}
	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]
	start := time.Now()

	switch command {
	case "extract":
		runExtract(cmdArgs, globals)
	case "filter":
		runFilter(cmdArgs, globals)
	case "condense":
		runCondense(cmdArgs, globals)
	case "coagulate":
		runCoagulate(cmdArgs, globals)
	case "crystalise":
		runCrystalise(cmdArgs, globals)
	case "oxidise":
		runOxidise(cmdArgs, globals)
	case "sample":
		runSample(cmdArgs, globals)
	case "update":
		runUpdate(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}

	if !globals.Quiet {
		fmt.Fprintf(os.Stderr, "done in %s\n", utils.FormatElapsedTime(time.Since(start)))
	}
}
