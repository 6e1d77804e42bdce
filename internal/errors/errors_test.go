// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want string
	}{
		{
			name: "with underlying error",
			err:  &UserError{Message: "Cannot open store", Err: fmt.Errorf("file locked")},
			want: "Cannot open store: file locked",
		},
		{
			name: "without underlying error",
			err:  &UserError{Message: "Invalid input", Err: nil},
			want: "Invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUserError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &UserError{Message: "test", Err: underlying}
	assert.Equal(t, underlying, err.Unwrap())

	bare := &UserError{Message: "test"}
	assert.Nil(t, bare.Unwrap())
}

func TestExitCodes_Unique(t *testing.T) {
	codes := []int{ExitSuccess, ExitConfig, ExitIO, ExitParsing, ExitDomain, ExitConcurrency, ExitInternal}
	seen := make(map[int]bool)
	for _, code := range codes {
		require.False(t, seen[code], "duplicate exit code %d", code)
		seen[code] = true
	}
}

func TestConstructors(t *testing.T) {
	underlying := fmt.Errorf("underlying error")

	tests := []struct {
		name         string
		err          *UserError
		wantExitCode int
		wantHasErr   bool
	}{
		{"config", NewConfigError("msg", "cause", "fix", underlying), ExitConfig, true},
		{"config no wrap", NewConfigError("msg", "cause", "fix", nil), ExitConfig, false},
		{"io", NewIOError("msg", "cause", "fix", underlying), ExitIO, true},
		{"parsing", NewParsingError("msg", "cause", "fix", underlying), ExitParsing, true},
		{"domain", NewDomainError("msg", "cause", "fix"), ExitDomain, false},
		{"concurrency", NewConcurrencyError("msg", "cause", "fix", underlying), ExitConcurrency, true},
		{"internal", NewInternalError("msg", "cause", "fix", underlying), ExitInternal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "msg", tt.err.Message)
			assert.Equal(t, "cause", tt.err.Cause)
			assert.Equal(t, "fix", tt.err.Fix)
			assert.Equal(t, tt.wantExitCode, tt.err.ExitCode)
			assert.Equal(t, tt.wantHasErr, tt.err.Err != nil)
		})
	}
}

func TestErrorChain(t *testing.T) {
	t.Run("errors.Is finds sentinel", func(t *testing.T) {
		sentinel := fmt.Errorf("sentinel error")
		wrapped := fmt.Errorf("wrapped: %w", sentinel)
		userErr := NewIOError("io error", "cause", "fix", wrapped)
		assert.True(t, errors.Is(userErr, sentinel))
	})

	t.Run("errors.As extracts nested UserError", func(t *testing.T) {
		inner := NewConfigError("config error", "cause", "fix", nil)
		outer := NewIOError("io error", "cause", "fix", inner)

		var ioErr *UserError
		require.True(t, errors.As(outer, &ioErr))
		assert.Equal(t, ExitIO, ioErr.ExitCode)

		var cfgErr *UserError
		require.True(t, errors.As(ioErr.Err, &cfgErr))
		assert.Equal(t, ExitConfig, cfgErr.ExitCode)
	})
}

func TestUserError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want []string
	}{
		{
			name: "full error",
			err: &UserError{
				Message: "Cannot open store", Cause: "The file is locked", Fix: "Close other instances",
				ExitCode: ExitIO,
			},
			want: []string{"Error: Cannot open store", "Cause: The file is locked", "Fix:   Close other instances"},
		},
		{
			name: "message only",
			err:  &UserError{Message: "Something failed", ExitCode: ExitInternal},
			want: []string{"Error: Something failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(true)
			for _, substr := range tt.want {
				assert.Contains(t, got, substr)
			}
		})
	}
}

func TestUserError_Format_NoColorEnv(t *testing.T) {
	old := os.Getenv("NO_COLOR")
	defer func() {
		if old != "" {
			os.Setenv("NO_COLOR", old)
		} else {
			os.Unsetenv("NO_COLOR")
		}
	}()

	os.Setenv("NO_COLOR", "1")
	err := &UserError{Message: "Test error", ExitCode: ExitConfig}
	output := err.Format(false)
	assert.NotContains(t, output, "\x1b[")
}

func TestUserError_ToJSON(t *testing.T) {
	err := &UserError{Message: "Invalid configuration", Cause: "Missing required flag", Fix: "Pass --origin", ExitCode: ExitConfig}
	got := err.ToJSON()
	assert.Equal(t, "Invalid configuration", got.Error)
	assert.Equal(t, "Missing required flag", got.Cause)
	assert.Equal(t, "Pass --origin", got.Fix)
	assert.Equal(t, ExitConfig, got.ExitCode)
}

func TestFatalError_NilDoesNothing(t *testing.T) {
	FatalError(nil, false)
}

func TestFatalError_NonUserErrorUsesStrings(t *testing.T) {
	err := fmt.Errorf("generic error")
	assert.Contains(t, fmt.Sprintf("Error: %v\n", err), "generic error")
}

func TestUserError_Format_OmitsEmptySections(t *testing.T) {
	err := &UserError{Message: "No cause or fix", ExitCode: ExitDomain}
	out := err.Format(true)
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "No cause or fix"))
}
