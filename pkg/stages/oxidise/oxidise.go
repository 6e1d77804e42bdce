// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package oxidise implements the Oxidise stage: it transcribes
// supplementary presentation content -- library articles
// and precomputed rankings -- from library files into the app-facing
// store, independently of Crystalise's substrate/coagulate pipeline.
package oxidise

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/transpaer/condenser/internal/errors"
	"github.com/transpaer/condenser/internal/logging"
	"github.com/transpaer/condenser/internal/metrics"
	"github.com/transpaer/condenser/pkg/feeds"
	"github.com/transpaer/condenser/pkg/ids"
	"github.com/transpaer/condenser/pkg/model"
	"github.com/transpaer/condenser/pkg/storage"
)

// StageName identifies this stage in logs and metrics.
const StageName = "oxidise"

// fashionTransparencyIndexTopic names the single presentation this stage
// currently produces.
const fashionTransparencyIndexTopic = "fashion_transparency_index"

// libraryInfo is one entry of the library index file: the topic id,
// paired with the title/summary shown before a reader opens the full
// article.
type libraryInfo struct {
	Id      string `yaml:"id"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Config names the library files this stage reads.
type Config struct {
	// LibraryIndexPath is the YAML file listing every topic's id/title/summary.
	LibraryIndexPath string
	// ArticlesDir holds one Markdown file per topic, named "<id>.md".
	ArticlesDir string
	// FtiPath is the Fashion Transparency Index YAML listing ranked companies.
	FtiPath string
}

// Result summarises one Oxidise run.
type Result struct {
	LibraryItems  int
	Presentations int
}

// Run transcribes the library index/articles and the Fashion
// Transparency Index ranking into store.
func Run(ctx context.Context, cfg Config, store *storage.LibraryStore, logger *slog.Logger) (Result, error) {
	logger = logging.OrDefault(logger)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	items, err := transcribeLibrary(cfg, store, logger)
	if err != nil {
		return Result{}, err
	}

	presentations, err := createPresentations(cfg, store, logger)
	if err != nil {
		return Result{}, err
	}

	metrics.ObserveStageDuration(StageName, time.Since(start).Seconds())
	return Result{LibraryItems: items, Presentations: presentations}, nil
}

// transcribeLibrary reads the library index and, for each topic, the
// matching article file, and writes every LibraryItem to store.
func transcribeLibrary(cfg Config, store *storage.LibraryStore, logger *slog.Logger) (int, error) {
	var infos []libraryInfo
	if err := loadYAML(cfg.LibraryIndexPath, &infos); err != nil {
		return 0, err
	}

	entries := make([]storage.Entry[storage.StringKey, model.LibraryItem], 0, len(infos))
	for _, info := range infos {
		articlePath := filepath.Join(cfg.ArticlesDir, info.Id+".md")
		article, err := os.ReadFile(articlePath)
		if err != nil {
			return 0, errors.NewIOError(
				fmt.Sprintf("cannot read library article %q", articlePath),
				"every topic named in the library index must have a matching article file",
				"add the missing Markdown file or remove the topic from the library index",
				err,
			)
		}
		logger.Debug("oxidise.library.item", "topic", info.Id)
		entries = append(entries, storage.NewEntry(storage.StringKey(info.Id), model.LibraryItem{
			Id:      info.Id,
			Title:   info.Title,
			Summary: info.Summary,
			Article: string(article),
		}))
	}

	if err := store.Library.PutAll(entries); err != nil {
		return 0, errors.NewIOError("cannot write library bucket", err.Error(), "check the target directory is writable", err)
	}
	metrics.RecordsWritten(StageName, len(entries))
	return len(entries), nil
}

// createPresentations builds the Fashion Transparency Index ranking and
// writes it as the single presentation this stage currently produces.
func createPresentations(cfg Config, store *storage.LibraryStore, logger *slog.Logger) (int, error) {
	if cfg.FtiPath == "" {
		return 0, nil
	}

	var ftiEntries []feeds.FtiEntry
	if err := loadYAML(cfg.FtiPath, &ftiEntries); err != nil {
		return 0, err
	}

	var rows []model.ScoredPresentationEntry
	seen := make(map[string]struct{}, len(ftiEntries))
	for _, e := range ftiEntries {
		if e.WikidataId == "" {
			continue
		}
		if _, dup := seen[e.WikidataId]; dup {
			return 0, errors.NewDomainError(
				fmt.Sprintf("repeated wikidata id %q in fashion transparency index", e.WikidataId),
				"every company in the ranking must appear exactly once",
				"deduplicate the source file",
			)
		}
		seen[e.WikidataId] = struct{}{}

		wiki, err := ids.ParseWikiId(e.WikidataId)
		if err != nil {
			logger.Warn("oxidise.presentation.unresolved", "wikidata_id", e.WikidataId, "reason", err.Error())
			continue
		}
		rows = append(rows, model.ScoredPresentationEntry{WikiId: wiki, Name: e.Name, Score: e.Score})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].WikiId.String() < rows[j].WikiId.String()
	})

	presentation := model.Presentation{
		Id:   fashionTransparencyIndexTopic,
		Data: model.PresentationData{Entries: rows},
	}
	if err := store.Presentations.Put(storage.StringKey(fashionTransparencyIndexTopic), presentation); err != nil {
		return 0, errors.NewIOError("cannot write presentation bucket", err.Error(), "check the target directory is writable", err)
	}
	metrics.RecordsWritten(StageName, 1)
	return 1, nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot read %q", path), err.Error(), "check the path exists and is readable", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.NewParsingError(fmt.Sprintf("cannot decode %q", path), err.Error(), "check the file is valid YAML matching the expected shape", err)
	}
	return nil
}
