// Package storage defines the key-value port the ledger persists through.
//
// A BlobStore holds opaque values under string keys. The ledger keeps its whole
// state in a single entry, so implementations only need whole-value reads and
// writes; there is no partial update, listing or transaction API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey is returned for keys that are empty or contain path elements.
	ErrInvalidKey = errors.New("invalid key")
)

// BlobStore is implemented by every persistence backend.
type BlobStore interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}

// ValidateKey rejects keys that could escape a directory-backed store.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
