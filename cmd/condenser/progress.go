// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressConfig determines if and how a stage's progress spinner should
// be displayed.
type ProgressConfig struct {
	// Enabled indicates whether a spinner should be shown. Disabled by
	// --quiet/--json or when stderr is not a TTY.
	Enabled bool

	// Writer is where progress output goes (always os.Stderr).
	Writer io.Writer

	// NoColor disables colored output in the spinner.
	NoColor bool
}

// NewProgressConfig derives a ProgressConfig from the CLI's global flags
// and TTY detection.
func NewProgressConfig(globals GlobalFlags) ProgressConfig {
	enabled := !globals.Quiet && !globals.JSON && isatty.IsTerminal(os.Stderr.Fd())

	return ProgressConfig{
		Enabled: enabled,
		Writer:  os.Stderr,
		NoColor: globals.NoColor,
	}
}

// NewStageSpinner creates an indeterminate spinner labelled with a stage's
// name, shown for the duration of its Run call since stages report a
// total record count only once they finish. Returns nil if progress is
// disabled, and the caller must guard every method call with a nil check.
func NewStageSpinner(cfg ProgressConfig, stageName string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(stageName),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}

// StopSpinner finishes and clears bar if it is non-nil.
func StopSpinner(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	_ = bar.Finish()
}

// WithSpinner runs fn while animating an indeterminate spinner labelled
// stageName, for stages that stream a whole dump without a known total.
// Spinning is skipped entirely when cfg disables progress.
func WithSpinner(cfg ProgressConfig, stageName string, fn func() error) error {
	bar := NewStageSpinner(cfg, stageName)
	if bar == nil {
		return fn()
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(65 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = bar.Add(1)
			case <-stop:
				return
			}
		}
	}()

	err := fn()
	close(stop)
	<-done
	StopSpinner(bar)
	return err
}
