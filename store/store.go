// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/SoftbearStudios/meadow/config"
	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

const layoutPrefix = "layout/"

var ErrNotFound = errors.New("layout not found")

// Store caches built layouts by config digest. Safe for concurrent use.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates a store on disk.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens a store that lives only as long as the process.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns ErrNotFound if no layout is stored under digest.
func (s *Store) Get(digest string) (meadow.Layout, error) {
	buf, err := s.db.Get([]byte(layoutPrefix+digest), nil)
	if err == leveldb.ErrNotFound {
		return meadow.Layout{}, ErrNotFound
	} else if err != nil {
		return meadow.Layout{}, fmt.Errorf("get layout %s: %w", digest, err)
	}

	layout, err := meadow.UnmarshalLayout(buf)
	if err != nil {
		return meadow.Layout{}, fmt.Errorf("decode layout %s: %w", digest, err)
	}
	return layout, nil
}

func (s *Store) Put(digest string, layout *meadow.Layout) error {
	buf, err := meadow.MarshalLayout(layout)
	if err != nil {
		return fmt.Errorf("encode layout %s: %w", digest, err)
	}
	if err = s.db.Put([]byte(layoutPrefix+digest), buf, nil); err != nil {
		return fmt.Errorf("put layout %s: %w", digest, err)
	}
	return nil
}

// Delete removes a layout. Deleting a missing layout is not an error.
func (s *Store) Delete(digest string) error {
	return s.db.Delete([]byte(layoutPrefix+digest), nil)
}

// Build returns the cached layout for c, building and storing it on a miss.
// Builds are seeded from c.Seed so a cached layout equals a fresh one.
func (s *Store) Build(c meadow.Config) (layout meadow.Layout, digest string, err error) {
	digest, err = config.Digest(c)
	if err != nil {
		return
	}

	layout, err = s.Get(digest)
	if err == nil || err != ErrNotFound {
		return
	}

	planner := meadow.NewPlanner(c)
	layout = planner.Build(rand.New(rand.NewSource(planner.Seed)))
	err = s.Put(digest, &layout)
	return
}

// Digests lists every stored layout digest.
func (s *Store) Digests() ([]string, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var digests []string
	for iter.Next() {
		key := string(iter.Key())
		if len(key) > len(layoutPrefix) && key[:len(layoutPrefix)] == layoutPrefix {
			digests = append(digests, key[len(layoutPrefix):])
		}
	}
	return digests, iter.Error()
}
