// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// csvSource yields one []string RawMessage per CSV record, skipping the
// header row.
type csvSource struct {
	reader *csv.Reader
	closer io.Closer
	header []string
}

// NewCSVSource wraps r as a Source of CSV record RawMessages, consuming
// and discarding the header row immediately.
func NewCSVSource(r io.Reader, closer io.Closer) (Source, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return &csvSource{reader: reader, closer: closer, header: header}, nil
}

// Header returns the column names read from the CSV's first row.
func (s *csvSource) Header() []string { return s.header }

func (s *csvSource) Next() (RawMessage, error) {
	record, err := s.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *csvSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// OpenCSVSource opens path as a CSV file and returns a Source of record
// RawMessages, along with the parsed header row for column lookup.
func OpenCSVSource(path string) (Source, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	src, err := NewCSVSource(f, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return src, src.(*csvSource).Header(), nil
}
