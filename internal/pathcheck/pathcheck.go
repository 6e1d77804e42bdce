// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package pathcheck validates every path a subcommand's flags name before
// the pipeline starts streaming data through it, so a typo'd --origin or a
// missing --cache directory fails fast with a UserError rather than
// surfacing as an opaque I/O error three stages deep.
package pathcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/transpaer/condenser/internal/errors"
)

// File verifies that path exists and is a regular file.
func File(flag, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NewConfigError(
			fmt.Sprintf("%s does not exist", flag),
			fmt.Sprintf("no file at %q", path),
			fmt.Sprintf("pass a valid path to %s", flag),
			err,
		)
	}
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot stat %s", flag), err.Error(), "check file permissions", err)
	}
	if info.IsDir() {
		return errors.NewConfigError(
			fmt.Sprintf("%s is a directory", flag),
			fmt.Sprintf("%q is a directory, not a file", path),
			fmt.Sprintf("pass a file path to %s", flag),
			nil,
		)
	}
	return nil
}

// Dir verifies that path exists and is a directory.
func Dir(flag, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NewConfigError(
			fmt.Sprintf("%s does not exist", flag),
			fmt.Sprintf("no directory at %q", path),
			fmt.Sprintf("create the directory or pass a valid path to %s", flag),
			err,
		)
	}
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot stat %s", flag), err.Error(), "check directory permissions", err)
	}
	if !info.IsDir() {
		return errors.NewConfigError(
			fmt.Sprintf("%s is not a directory", flag),
			fmt.Sprintf("%q is a file, not a directory", path),
			fmt.Sprintf("pass a directory path to %s", flag),
			nil,
		)
	}
	return nil
}

// EmptyDir verifies that path exists, is a directory, and is empty,
// required for an output directory a stage refuses to overwrite silently.
func EmptyDir(flag, path string) error {
	if err := Dir(flag, path); err != nil {
		return err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot list %s", flag), err.Error(), "check directory permissions", err)
	}
	if len(entries) > 0 {
		return errors.NewConfigError(
			fmt.Sprintf("%s is not empty", flag),
			fmt.Sprintf("%q already contains files", path),
			fmt.Sprintf("pass an empty directory to %s, or remove its contents", flag),
			nil,
		)
	}
	return nil
}

// Creatable verifies that path does not already exist, but its parent
// directory does (the shape required of an output file flag before a
// stage opens it for writing).
func Creatable(flag, path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.NewConfigError(
			fmt.Sprintf("%s already exists", flag),
			fmt.Sprintf("%q already exists", path),
			fmt.Sprintf("pass a new path to %s, or remove the existing file first", flag),
			nil,
		)
	}

	base := filepath.Dir(path)
	info, err := os.Stat(base)
	if os.IsNotExist(err) {
		return errors.NewConfigError(
			fmt.Sprintf("%s's parent directory does not exist", flag),
			fmt.Sprintf("no directory at %q", base),
			fmt.Sprintf("create %q first", base),
			err,
		)
	}
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot stat %s's parent directory", flag), err.Error(), "check directory permissions", err)
	}
	if !info.IsDir() {
		return errors.NewConfigError(
			fmt.Sprintf("%s's parent is not a directory", flag),
			fmt.Sprintf("%q is a file, not a directory", base),
			fmt.Sprintf("pass a path under a real directory to %s", flag),
			nil,
		)
	}
	return nil
}
