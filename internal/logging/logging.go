// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package logging provides the structured logger shared by every stage of
// the pipeline. Events are logged with dotted, stage-scoped names
// ("condense.feed.read", "coagulate.cluster.merge") and key/value
// attributes, matching the convention used throughout the ingestion
// pipeline this package was generalized from.
package logging

import (
	"log/slog"
	"os"
)

// Option configures the logger New builds.
type Option func(*config)

type config struct {
	level  slog.Level
	json   bool
	output *os.File
}

// WithLevel sets the minimum level logged.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithJSON switches the handler from human-readable text to JSON lines,
// used when a stage's output is consumed by another process.
func WithJSON(json bool) Option {
	return func(c *config) { c.json = json }
}

// New builds a *slog.Logger writing to stderr by default.
func New(opts ...Option) *slog.Logger {
	cfg := config{level: slog.LevelInfo, output: os.Stderr}
	for _, opt := range opts {
		opt(&cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	return slog.New(handler)
}

// OrDefault returns logger unchanged, or slog.Default() if logger is nil,
// matching the nil-logger fallback every constructor in this codebase
// uses.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
