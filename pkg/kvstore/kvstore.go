package kvstore

import (
	"context"
	"errors"
)

// Store is a persistent string key-value backend. Values are opaque blobs
// owned entirely by the caller; Set overwrites the whole value for a key.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrQuotaExceeded is returned by Set when a value is larger than the
// backend's configured capacity ceiling. Callers should surface it as a
// storage failure, not crash.
var ErrQuotaExceeded = errors.New("kvstore: value exceeds storage quota")
