// Package storage holds the upload adapter: client-side validation of files
// before they are handed to the remote object store, and resolution of
// public URLs back to storage keys for deletion.
package storage

import (
	"context"
	"io"
)

// ObjectStore is the remote object storage contract: store bytes under a
// bucket/path, resolve a public URL, remove keys.
type ObjectStore interface {
	Put(ctx context.Context, bucket, path string, contentType string, r io.Reader) (storedPath string, err error)
	PublicURL(bucket, storedPath string) string
	Remove(ctx context.Context, bucket string, paths []string) error
}
