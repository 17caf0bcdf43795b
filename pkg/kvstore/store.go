// Package kvstore provides the key-value storage used by the product and
// inbound-note services. Each collection is addressed by a single string key
// and stored as a flat record of named attributes. Update replaces only the
// named attributes; the arithmetic behind any value is resolved by the caller
// before the write.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Record is one stored item: attribute name to JSON-compatible value.
type Record map[string]any

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the storage contract shared by all backends.
type Store interface {
	// Get returns the record stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (Record, error)
	// Put inserts or fully replaces the record stored under key.
	Put(ctx context.Context, key string, rec Record) error
	// Update unconditionally replaces the named attributes only.
	// Returns ErrNotFound when the key does not exist.
	Update(ctx context.Context, key string, fields Record) error
	// Delete removes the record. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Scan returns every record in the collection. Unbounded, no pagination.
	Scan(ctx context.Context) ([]Record, error)
}

// Encode converts a struct into a Record via its JSON representation.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode converts a Record back into a struct via its JSON representation.
func Decode(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
