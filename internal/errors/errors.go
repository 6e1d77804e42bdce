// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the condenser CLI.
//
// It defines UserError, a type that carries what went wrong, why, and how to
// fix it, plus a stable exit code per error category.
//
// # Usage
//
//	err := errors.NewConfigError(
//	    "Cannot open the origin directory",
//	    "The directory does not exist",
//	    "Run 'condenser extract --origin <dir>' with a valid path",
//	    underlyingErr,
//	)
//	if err != nil {
//	    errors.FatalError(err, false)
//	}
//
// # Categories
//
// Exit codes follow the pipeline's own error taxonomy rather than a generic
// CLI's:
//   - ExitSuccess (0): successful execution
//   - ExitConfig (1): missing/invalid flags, directories, config files
//   - ExitIO (2): filesystem/store errors (can't read, write, flush)
//   - ExitParsing (3): malformed input data (bad row, corrupt stream)
//   - ExitDomain (4): violated domain invariant (conflicting identity, etc.)
//   - ExitConcurrency (5): worker pool / streaming engine failure
//   - ExitInternal (10): a bug, should be reported
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for the pipeline's error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates a configuration error: missing/invalid flags,
	// directories that don't exist or aren't writable, malformed YAML.
	ExitConfig = 1

	// ExitIO indicates a filesystem or store error: a substrate file could
	// not be opened or read, or the KV store could not be flushed.
	ExitIO = 2

	// ExitParsing indicates malformed input data: a row that doesn't match
	// its feed's expected shape, a corrupt gzip/bzip2 stream, bad JSON.
	ExitParsing = 3

	// ExitDomain indicates a violated domain invariant: two organisations
	// claiming the same canonical identity, a reference to an unknown
	// record, and similar.
	ExitDomain = 4

	// ExitConcurrency indicates a worker pool or engine failure: a worker
	// panicked, or a stash could not merge a partial result.
	ExitConcurrency = 5

	// ExitInternal indicates a bug: an unreachable branch was reached.
	ExitInternal = 10
)

// UserError is an error with structured context for end users.
//
// Message describes what went wrong, Cause explains why, and Fix suggests
// how to resolve it. ExitCode is the process exit code for this error. Err
// optionally wraps the underlying cause for errors.Is/errors.As.
type UserError struct {
	// Message describes what went wrong in user-facing language.
	Message string

	// Cause explains why the error occurred.
	Cause string

	// Fix suggests how to resolve the error.
	Fix string

	// ExitCode is the process exit code for this error.
	ExitCode int

	// Err is the wrapped underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error, for errors.Is/errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error with exit code ExitConfig.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewIOError creates a filesystem/store error with exit code ExitIO.
func NewIOError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitIO, Err: err}
}

// NewParsingError creates a malformed-input error with exit code ExitParsing.
func NewParsingError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitParsing, Err: err}
}

// NewDomainError creates a domain-invariant error with exit code ExitDomain.
// Domain errors typically don't wrap an underlying error: the violation
// itself is the cause.
func NewDomainError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitDomain}
}

// NewConcurrencyError creates a worker/engine error with exit code ExitConcurrency.
func NewConcurrencyError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConcurrency, Err: err}
}

// NewInternalError creates a bug-report-worthy error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display, colored
// unless noColor is set or NO_COLOR is present in the environment.
//
// Example output:
//
//	Error: Cannot open the origin directory
//	Cause: The directory does not exist
//	Fix:   Run 'condenser extract --origin <dir>' with a valid path
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON is the machine-readable form of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to its JSON-serializable form.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{Error: e.Message, Cause: e.Cause, Fix: e.Fix, ExitCode: e.ExitCode}
}

// FatalError prints err and exits with its exit code. Non-UserError values
// print a bare message and exit ExitInternal. Never returns.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
