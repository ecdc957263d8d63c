// Package filestore is the blob-store boundary for receipt files. The
// database keeps metadata only; the bytes live behind this interface.
package filestore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the backing blob is gone. Callers surface
// it as a plain not-found, never as a crash.
var ErrNotFound = errors.New("file not found")

type Store interface {
	// Put writes the blob under path, creating parents as needed.
	Put(ctx context.Context, path string, r io.Reader) error
	// Open returns a reader for the blob. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing blob is not an error:
	// the record must be removable even when the backing file is gone.
	Delete(ctx context.Context, path string) error
}
