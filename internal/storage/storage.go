// Package storage defines the persisted-slot collaborator: a small byte-level
// key-value store that card collections are written into, one slot per
// language.
package storage

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("storage: store is closed")

// SlotStore is the key-value contract every backend implements.
type SlotStore interface {
	// Get returns the slot's value and whether it exists. A missing slot is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the slot's value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
