// Package storage puts uploaded images into an object bucket and hands back their public URLs.
package storage

import (
	"college-site/internal/config"
	"college-site/internal/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// NewsThumbnails is the fixed prefix for news images.
const NewsThumbnails = "news-thumbnails"

// ErrNotConfigured is returned by every upload when storage credentials are missing.
var ErrNotConfigured = errors.New("object storage is not configured")

// Bucket stores objects and resolves their public URLs.
type Bucket interface {
	// Upload stores body under key and returns the object's public URL.
	Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
	PublicURL(key string) string
}

// New builds the bucket selected by cfg.Driver. Without both connection
// parameters every driver is replaced by one that rejects every upload.
func New(cfg config.StorageConfig, log logger.Logger) (Bucket, error) {
	switch cfg.Driver {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
	if !cfg.Configured() {
		log.Warn("Storage URL or API key is missing; image uploads are disabled")
		return Disabled{}, nil
	}

	if cfg.Driver == "local" {
		return NewLocalBucket(cfg.LocalDir, "/uploads"), nil
	}
	return NewS3Bucket(cfg)
}

// Disabled is the bucket used when storage is not configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.ReadSeeker, string) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) PublicURL(string) string { return "" }

// ObjectKey builds "<prefix>/<unix-millis>-<filename>" from the upload time
// and a sanitized copy of the original filename.
func ObjectKey(prefix string, now time.Time, filename string) string {
	return prefix + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + SanitizeFilename(filename)
}

var filenameReplacer = strings.NewReplacer(
	" ", "-",
	"'", "",
	"\"", "",
	"<", "",
	">", "",
	"&", "",
	"#", "",
	"?", "",
	"%", "",
	"\\", "",
)

// SanitizeFilename strips directories and characters that break keys or URLs.
func SanitizeFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	filename = filenameReplacer.Replace(filename)
	if filename == "" || filename == "." || filename == "/" {
		return "image"
	}
	return filename
}

// joinURL appends an escaped key to base.
func joinURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
