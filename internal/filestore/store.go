// Package filestore defines the interface for file storage backends.
//
// A backend owns one storage root and keeps a flat set of named files under
// it. Callers depend only on this package, never on a specific backend
// package.
//
// Usage:
//
//	store, err := local.New(filestore.DefaultConfig("uploads"), log)
//	if err != nil { ... }
//
//	names, err := store.List(ctx)
package filestore

import (
	"context"
	"io"
)

// Store is the single interface all file storage backends must implement.
// Expected conditions are reported through *errs.Error kinds, not panics.
type Store interface {
	// List returns the names of all stored files in no particular order.
	// An empty root yields an empty slice and a nil error.
	List(ctx context.Context) ([]string, error)

	// Put copies src into the store under name.
	// It fails with errs.ErrKindAlreadyExists when name is already stored;
	// the backend must refuse the overwrite itself rather than check first.
	Put(ctx context.Context, name string, src io.Reader) error

	// Delete removes the file stored under name.
	// It fails with errs.ErrKindNotFound when nothing is stored under name.
	Delete(ctx context.Context, name string) error
}
