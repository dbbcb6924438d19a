package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBucket stores objects on disk below dir. The router serves dir at urlPrefix.
type LocalBucket struct {
	dir       string
	urlPrefix string
}

// NewLocalBucket creates a bucket rooted at dir.
func NewLocalBucket(dir, urlPrefix string) *LocalBucket {
	return &LocalBucket{dir: dir, urlPrefix: urlPrefix}
}

// Dir returns the directory objects are written to.
func (b *LocalBucket) Dir() string {
	return b.dir
}

// Upload writes body to dir/key and returns its public URL.
func (b *LocalBucket) Upload(ctx context.Context, key string, body io.ReadSeeker, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(b.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	return b.PublicURL(key), nil
}

// PublicURL returns the path the object is served from.
func (b *LocalBucket) PublicURL(key string) string {
	return joinURL(b.urlPrefix, key)
}
