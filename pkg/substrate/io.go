// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package substrate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/transpaer/condenser/pkg/engine"
	"github.com/transpaer/condenser/pkg/model"
)

// Reader streams model.SubstrateRecord values out of a substrate file,
// one JSON object per line. It implements engine.Source so it can drive
// Coagulate/Crystalise's Run() directly.
type Reader struct {
	lines engine.Source
}

// OpenReader opens the substrate file at path, dispatching on its
// extension (.gz / .bz2 / plain) the same way engine.OpenLineSource does.
func OpenReader(path string) (*Reader, error) {
	lines, err := engine.OpenLineSource(path)
	if err != nil {
		return nil, err
	}
	return &Reader{lines: lines}, nil
}

// Next decodes the next record, returning io.EOF once the file is
// exhausted.
func (r *Reader) Next() (model.SubstrateRecord, error) {
	raw, err := r.lines.Next()
	if err != nil {
		return model.SubstrateRecord{}, err
	}
	line, ok := raw.([]byte)
	if !ok {
		return model.SubstrateRecord{}, fmt.Errorf("substrate reader: unexpected line type %T", raw)
	}
	var rec model.SubstrateRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return model.SubstrateRecord{}, fmt.Errorf("decoding substrate record: %w", err)
	}
	return rec, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error { return r.lines.Close() }

// Writer appends model.SubstrateRecord values to a substrate file, one
// JSON object per line.
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	closed bool
}

// CreateWriter truncates (or creates) the substrate file at path for
// writing.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating substrate file %q: %w", path, err)
	}
	return &Writer{file: f, buf: bufio.NewWriter(f)}, nil
}

// Write appends one record as a single JSON line.
func (w *Writer) Write(rec model.SubstrateRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding substrate record: %w", err)
	}
	if _, err := w.buf.Write(data); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Close flushes buffered writes and closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

var _ io.Closer = (*Writer)(nil)
