// Package store holds the Badger-backed notification feed and the storage errors
// shared with the relational store.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens a Badger database at path. An empty path opens an in-memory database,
// which is what tests use.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts.SyncWrites = true
		opts.CompactL0OnClose = true
	}
	opts.Logger = nil // Badger's internal logger is too chatty

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Notification store opened", "path", path, "in_memory", path == "")
	}

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing notification store")
	}
	return s.db.Close()
}

// Ping reports whether the database accepts read transactions.
func (s *Store) Ping() error {
	if s.db.IsClosed() {
		return errors.New("notification store is closed")
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// getInTxn decodes the JSON value stored under key.
func getInTxn(txn *badger.Txn, key []byte, dest any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}

// setInTxn encodes value as JSON under key.
func setInTxn(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return txn.Set(key, data)
}

func notFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}
