package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSStore is an ObjectStore on the local filesystem, serving objects under a
// public base URL. Buckets are directories below the root.
type FSStore struct {
	root    string
	baseURL string
}

var _ ObjectStore = (*FSStore)(nil)

// NewFSStore creates a filesystem-backed store. baseURL is the prefix under
// which the root is served, e.g. "http://localhost:8080/media".
func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *FSStore) Put(_ context.Context, bucket, path string, _ string, r io.Reader) (string, error) {
	full := filepath.Join(s.root, bucket, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create object %s/%s: %w", bucket, path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write object %s/%s: %w", bucket, path, err)
	}
	return path, nil
}

func (s *FSStore) PublicURL(bucket, storedPath string) string {
	return s.baseURL + "/" + bucket + "/" + storedPath
}

func (s *FSStore) Remove(_ context.Context, bucket string, paths []string) error {
	for _, p := range paths {
		full := filepath.Join(s.root, bucket, filepath.FromSlash(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove object %s/%s: %w", bucket, p, err)
		}
	}
	return nil
}
