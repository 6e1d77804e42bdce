// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package substrate locates and reads the per-source substrate files that
// Condense writes and Coagulate/Crystalise consume: one file per data
// source, named by its Source tag, holding line-delimited JSON
// model.SubstrateRecord values.
package substrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/transpaer/condenser/pkg/model"
)

// DataSetId identifies one substrate file within a Substrates registry, by
// its position in directory listing order.
type DataSetId int

// Substrate names one substrate file: its assigned id, its path on disk,
// the file's stem name, and the Source it was parsed as.
type Substrate struct {
	Id     DataSetId
	Path   string
	Name   string
	Source model.Source
}

// Substrates is the registry of every substrate file found in a directory.
type Substrates struct {
	list []Substrate
}

// Prepare scans directory for substrate files, assigning each a
// DataSetId in listing order. Files whose name carries no extension, whose
// stem names a Source outside the fixed enumeration, or whose name isn't
// valid UTF-8 are skipped and recorded in the returned Report rather than
// failing the scan.
func Prepare(directory string) (Substrates, Report, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return Substrates{}, Report{}, fmt.Errorf("reading substrate directory %q: %w", directory, err)
	}

	var report Report
	var list []Substrate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(directory, name)

		stem := stemOf(name)
		if stem == "" {
			report.addNoStem(path)
			continue
		}
		source, err := model.ParseSource(stem)
		if err != nil {
			report.addUnknownSource(path, stem)
			continue
		}
		list = append(list, Substrate{
			Id:     DataSetId(len(list)),
			Path:   path,
			Name:   stem,
			Source: source,
		})
	}

	return Substrates{list: list}, report, nil
}

// stemOf returns a file name with its extension(s) stripped, e.g.
// "wiki.jsonl.gz" -> "wiki". Returns "" for a name with no stem (a
// dotfile like ".gitignore", or an empty name).
func stemOf(name string) string {
	for {
		ext := filepath.Ext(name)
		if ext == "" || ext == name {
			break
		}
		name = name[:len(name)-len(ext)]
	}
	if name == "" {
		return ""
	}
	return name
}

// List returns every substrate found, ordered by DataSetId.
func (s Substrates) List() []Substrate { return s.list }

// GetPathForId returns the file path registered under id.
func (s Substrates) GetPathForId(id DataSetId) (string, bool) {
	for _, sub := range s.list {
		if sub.Id == id {
			return sub.Path, true
		}
	}
	return "", false
}

// GetNameForId returns the stem name registered under id.
func (s Substrates) GetNameForId(id DataSetId) (string, bool) {
	for _, sub := range s.list {
		if sub.Id == id {
			return sub.Name, true
		}
	}
	return "", false
}

// GetIdForName returns the DataSetId registered under name.
func (s Substrates) GetIdForName(name string) (DataSetId, bool) {
	for _, sub := range s.list {
		if sub.Name == name {
			return sub.Id, true
		}
	}
	return 0, false
}

// Report collects the substrate files Prepare chose not to register, so a
// caller can warn about them once at the end of a run instead of failing
// the whole scan over one bad file.
type Report struct {
	noStem        []string
	unknownSource []unknownSourceEntry
}

type unknownSourceEntry struct {
	path string
	stem string
}

func (r *Report) addNoStem(path string) {
	r.noStem = append(r.noStem, path)
}

func (r *Report) addUnknownSource(path, stem string) {
	r.unknownSource = append(r.unknownSource, unknownSourceEntry{path: path, stem: stem})
}

// Empty reports whether nothing was skipped.
func (r Report) Empty() bool { return len(r.noStem) == 0 && len(r.unknownSource) == 0 }

// Log emits the report as a sequence of warning-level log lines, one per
// skipped file, grouped by reason.
func (r Report) Log(warn func(msg string, args ...any)) {
	if r.Empty() {
		return
	}
	warn("substrate.report.start")
	if len(r.noStem) > 0 {
		paths := append([]string(nil), r.noStem...)
		sort.Strings(paths)
		for _, path := range paths {
			warn("substrate.report.no_stem", "path", path)
		}
	}
	if len(r.unknownSource) > 0 {
		entries := append([]unknownSourceEntry(nil), r.unknownSource...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })
		for _, e := range entries {
			warn("substrate.report.unknown_source", "path", e.path, "stem", e.stem)
		}
	}
	warn("substrate.report.end")
}
