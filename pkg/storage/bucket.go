// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
)

// Key is anything a Bucket can use as a bbolt key: it must collapse to a
// single canonical string, since bbolt's ordered byte-map sorts keys
// lexicographically and the pipeline's canonical id strings are already
// deterministic and collision-free within their own namespace.
type Key interface {
	String() string
}

// StringKey adapts a plain string (a keyword, a VAT id, a normalised
// domain) to Key.
type StringKey string

func (k StringKey) String() string { return string(k) }

// Bucket is a typed view over one bbolt bucket: keys are encoded through
// Key.String, values are JSON-encoded. It is the generic wrapper AppStore
// composes its named buckets from.
type Bucket[K Key, V any] struct {
	db   *bolt.DB
	name []byte
}

// NewBucket returns a Bucket over the named bbolt bucket. The bucket is
// created lazily on first write.
func NewBucket[K Key, V any](db *bolt.DB, name string) *Bucket[K, V] {
	return &Bucket[K, V]{db: db, name: []byte(name)}
}

// Put writes one key-value pair, creating the bucket if it doesn't exist.
func (b *Bucket[K, V]) Put(key K, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encoding value for bucket %q: %w", b.name, err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(b.name)
		if err != nil {
			return fmt.Errorf("storage: creating bucket %q: %w", b.name, err)
		}
		return bkt.Put([]byte(key.String()), data)
	})
}

// Entry is one key-value pair queued for PutAll.
type Entry[K Key, V any] struct {
	Key   K
	Value V
}

// NewEntry constructs an Entry for PutAll.
func NewEntry[K Key, V any](key K, value V) Entry[K, V] {
	return Entry[K, V]{Key: key, Value: value}
}

// PutAll writes every entry in a single transaction, in ascending
// key-string order, so inserts stay deterministic: sorted canonical-id
// order rather than map iteration order.
func (b *Bucket[K, V]) PutAll(entries []Entry[K, V]) error {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.String() < entries[j].Key.String()
	})
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(b.name)
		if err != nil {
			return fmt.Errorf("storage: creating bucket %q: %w", b.name, err)
		}
		for _, e := range entries {
			data, err := json.Marshal(e.Value)
			if err != nil {
				return fmt.Errorf("storage: encoding value for bucket %q key %q: %w", b.name, e.Key.String(), err)
			}
			if err := bkt.Put([]byte(e.Key.String()), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get reads the value stored under key. The bool is false if the bucket or
// the key doesn't exist.
func (b *Bucket[K, V]) Get(key K) (V, bool, error) {
	var out V
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(b.name)
		if bkt == nil {
			return nil
		}
		data := bkt.Get([]byte(key.String()))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &out)
	})
	return out, found, err
}

// Len returns the number of keys currently stored in the bucket.
func (b *Bucket[K, V]) Len() (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(b.name)
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}

// ForEach visits every key-value pair in ascending key order.
func (b *Bucket[K, V]) ForEach(fn func(key string, value V) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(b.name)
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, data []byte) error {
			var value V
			if err := json.Unmarshal(data, &value); err != nil {
				return fmt.Errorf("storage: decoding value for bucket %q key %q: %w", b.name, k, err)
			}
			return fn(string(k), value)
		})
	})
}
