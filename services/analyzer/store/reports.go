// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store persists past analysis reports in an embedded badger
// key-value database.
//
// Persistence is an outer collaborator: the analysis pipeline itself stays
// stateless, and the service runs fine with the store disabled (no data
// directory configured).
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// ErrNotFound indicates no report exists under the requested id.
var ErrNotFound = errors.New("report not found")

// keyPrefix namespaces report keys inside the database.
const keyPrefix = "report:"

// ReportStore is a badger-backed report archive. Safe for concurrent use.
type ReportStore struct {
	db *badger.DB
}

// Open opens (or creates) the database under dir.
func Open(dir string) (*ReportStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logger is too chatty for a sidecar store
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}
	return &ReportStore{db: db}, nil
}

// Close releases the database.
func (s *ReportStore) Close() error {
	return s.db.Close()
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save persists a report under its ID.
func (s *ReportStore) Save(rep datatypes.AnalysisReport) error {
	if rep.ID == "" {
		return fmt.Errorf("report has no id")
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(rep.ID), data)
	})
}

// Get loads the report stored under id.
func (s *ReportStore) Get(id string) (datatypes.AnalysisReport, error) {
	var rep datatypes.AnalysisReport
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rep)
		})
	})
	return rep, err
}

// List returns the IDs of all persisted reports.
func (s *ReportStore) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}

// Delete removes the report stored under id. Deleting a missing report is
// not an error.
func (s *ReportStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}
