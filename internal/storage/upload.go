package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxFileSize is the upload size ceiling when none is configured.
	DefaultMaxFileSize = 5 * 1024 * 1024
	// DefaultMaxFiles bounds a single batch upload.
	DefaultMaxFiles = 10
)

// DefaultAcceptedTypes are the MIME types accepted when none are configured.
var DefaultAcceptedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// File is one upload: metadata plus content.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploaderOptions configures an Uploader. Zero values fall back to the
// defaults above.
type UploaderOptions struct {
	Bucket        string
	PathPrefix    string
	AcceptedTypes []string
	MaxFileSize   int64
	MaxFiles      int
}

// Uploader validates files client-side before delegating to the remote
// object store, and resolves public URLs for stored objects.
type Uploader struct {
	store    ObjectStore
	bucket   string
	prefix   string
	accepted []string
	maxSize  int64
	maxFiles int
}

func NewUploader(store ObjectStore, opts UploaderOptions) *Uploader {
	accepted := opts.AcceptedTypes
	if len(accepted) == 0 {
		accepted = DefaultAcceptedTypes
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &Uploader{
		store:    store,
		bucket:   opts.Bucket,
		prefix:   opts.PathPrefix,
		accepted: accepted,
		maxSize:  maxSize,
		maxFiles: maxFiles,
	}
}

// Validate checks type and size and returns a descriptive error, or nil.
func (u *Uploader) Validate(f File) error {
	accepted := false
	for _, t := range u.accepted {
		if f.ContentType == t {
			accepted = true
			break
		}
	}
	if !accepted {
		return fmt.Errorf("invalid file type %q, accepted types: %s", f.ContentType, strings.Join(u.accepted, ", "))
	}
	if f.Size > u.maxSize {
		return fmt.Errorf("file too large, maximum size: %dMB", u.maxSize/1024/1024)
	}
	return nil
}

// Upload validates the file, stores it under a collision-resistant path and
// returns its public URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	if err := u.Validate(f); err != nil {
		return "", err
	}

	storedPath, err := u.store.Put(ctx, u.bucket, u.objectPath(f.Name), f.ContentType, f.Content)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", f.Name, err)
	}
	return u.store.PublicURL(u.bucket, storedPath), nil
}

// UploadAll uploads a batch in order, reporting progress at file-completion
// granularity: after the i-th of n files, progress is (i+1)/n*100. Files
// that fail validation or upload are skipped and logged; the returned slice
// holds the URLs of the files that made it.
func (u *Uploader) UploadAll(ctx context.Context, files []File, progress func(percent int)) ([]string, error) {
	if len(files) > u.maxFiles {
		return nil, fmt.Errorf("too many files: %d exceeds the maximum of %d", len(files), u.maxFiles)
	}

	var urls []string
	for i, f := range files {
		url, err := u.Upload(ctx, f)
		if err != nil {
			slog.Error("Failed to upload file", "name", f.Name, "err", err)
		} else {
			urls = append(urls, url)
		}
		if progress != nil {
			progress((i + 1) * 100 / len(files))
		}
	}
	return urls, nil
}

// DeleteByURL resolves the storage key from the URL's trailing path segment
// and removes the object. It fails closed: an unparsable URL is an error and
// nothing is removed.
func (u *Uploader) DeleteByURL(ctx context.Context, url string) error {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	slash := strings.LastIndex(url, "/")
	if slash < 0 {
		return fmt.Errorf("invalid object URL %q", url)
	}
	key := url[slash+1:]
	if key == "" {
		return fmt.Errorf("invalid object URL %q", url)
	}
	if u.prefix != "" {
		key = u.prefix + key
	}
	if err := u.store.Remove(ctx, u.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// objectPath builds "<prefix><unix-ms>-<token><ext>" so two uploads of the
// same file never collide.
func (u *Uploader) objectPath(name string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s%d-%s%s", u.prefix, time.Now().UnixMilli(), token, path.Ext(name))
}
