// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package store persists session snapshots. A small KV abstraction backs
// two implementations: an in-memory map for tests and degraded operation,
// and SQLite for real persistence. Snapshots are stored as JSON blobs, so
// the bucketed engine maps round-trip as plain string-keyed mappings.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key (or a user's session) does not exist.
var ErrNotFound = errors.New("store: not found")

// KVStore is a minimal byte-oriented key-value store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
