/*
Package kv defines the key-value persistence contract the ledger
writes through, plus an in-memory implementation.

PURPOSE:
  The ledger persists its state as flat string keys: the transaction
  list as a JSON array and each scalar as a JSON number. This package
  is the seam between the engine and whatever device/server store backs
  it. Implementations exist for memory (here), SQLite (store/sqlite)
  and Redis (store/redis).

CONTRACT:
  - Get returns (value, false, nil) when the key is absent; callers
    fall back to their zero value, never error on a missing key.
  - MultiSet is the batch write the ledger relies on: one call persists
    the list and every scalar together, so a crash cannot leave the
    stored scalars referencing a list they were not computed from
    (best effort - memory state stays authoritative either way).

SEE ALSO:
  - ../ledger.go: The only writer
  - ../../backup: Export/import over the same keys
*/
package kv

import "context"

// Store is an async string key-value store.
type Store interface {
	// Get returns the value for key, or ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes a single key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a single key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// MultiGet returns the present subset of keys.
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)

	// MultiSet writes all pairs in one batch.
	MultiSet(ctx context.Context, pairs map[string]string) error

	// MultiRemove deletes all keys in one batch.
	MultiRemove(ctx context.Context, keys []string) error
}
