// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package storage

import (
	"github.com/transpaer/condenser/pkg/model"
)

// Bucket names for the Oxidise-populated store, kept in its own
// directory disjoint from Crystalise's target store.
const (
	bucketLibrary      = "library.topic"
	bucketPresentation = "presentation.topic"
)

// LibraryStore exposes the buckets Oxidise populates from library files:
// a topic-keyed article index and a topic-keyed precomputed ranking.
// It is opened against its own directory, never the Crystalise target.
type LibraryStore struct {
	Library       *Bucket[StringKey, model.LibraryItem]
	Presentations *Bucket[StringKey, model.Presentation]
}

// NewLibraryStore wires the Oxidise buckets onto store's underlying
// database.
func NewLibraryStore(store *DbStore) *LibraryStore {
	db := store.db
	return &LibraryStore{
		Library:       NewBucket[StringKey, model.LibraryItem](db, bucketLibrary),
		Presentations: NewBucket[StringKey, model.Presentation](db, bucketPresentation),
	}
}
