package storage

import (
	"context"
)

// UpdateFunc computes the new value of a key from its current one.
// found is false when the key is absent. Returning an error aborts the update.
type UpdateFunc = func(old string, found bool) (string, error)

// KVStore is a string key/value store.
//
// Update is an atomic read-modify-write: fn may run more than once when a
// concurrent writer wins the race, and the store gives up with
// customerr.ErrConflict after a bounded number of attempts.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
