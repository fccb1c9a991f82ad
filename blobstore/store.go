package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// BlobStore is an abstraction for accessing immutable data blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the blob names under the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes starting at off, honoring ctx cancellation.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// FullReader is an optional interface for stores that can fetch a whole
// blob more efficiently than sequential ReadAt calls (e.g. parallel ranged
// downloads).
type FullReader interface {
	// ReadFull returns the complete contents of the named blob.
	ReadFull(ctx context.Context, name string) ([]byte, error)
}

// ReadAll reads the complete contents of the named blob, using the store's
// FullReader fast path when available.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	if fr, ok := store.(FullReader); ok {
		return fr.ReadFull(ctx, name)
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	data := make([]byte, b.Size())
	n, err := b.ReadAt(ctx, data, 0)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if int64(n) != b.Size() {
		return nil, fmt.Errorf("blobstore: short read: got %d of %d bytes", n, b.Size())
	}
	return data, nil
}
