// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package engine

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// lineSource reads newline-delimited records from an underlying io.Reader,
// emitting each line's bytes (without the trailing newline) as a
// RawMessage. The returned slice is a fresh copy per line, safe to retain
// past the next call.
type lineSource struct {
	scanner *bufio.Scanner
	closers []io.Closer
}

// NewLineSource wraps r as a Source of line RawMessages. Extra closers
// (e.g. the underlying gzip.Reader, then the file) are closed in order
// when the Source is closed.
func NewLineSource(r io.Reader, closers ...io.Closer) Source {
	scanner := bufio.NewScanner(r)
	// Graph dumps and substrate files can carry lines well past the
	// default 64KiB scanner buffer (long description/alias lists).
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)
	return &lineSource{scanner: scanner, closers: closers}
}

func (s *lineSource) Next() (RawMessage, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	line := s.scanner.Bytes()
	out := make([]byte, len(line))
	copy(out, line)
	return out, nil
}

func (s *lineSource) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenLineSource opens path and returns a line Source, transparently
// decompressing gzip or bzip2 input based on the file extension.
//
// Concatenated gzip members (the shape Wikidata's graph dump ships in) are
// handled without any special-case logic here: gzip.Reader's multistream
// mode, which klauspost/compress/gzip enables by default exactly like the
// standard library, already detects end-of-member and transparently
// restarts the decoder on the next byte, continuing until a genuine EOF.
// Go's stdlib bzip2.Reader does the same for concatenated bzip2 streams.
func OpenLineSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		return NewLineSource(gz, gz, f), nil
	case strings.HasSuffix(path, ".bz2"):
		return NewLineSource(bzip2.NewReader(f), f), nil
	default:
		return NewLineSource(f, f), nil
	}
}
