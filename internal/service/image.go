package service

import (
	"bytes"
	"college-site/internal/media"
	"college-site/internal/storage"
	"context"
	"errors"
	"time"
)

// MaxImageSize is the largest accepted upload, 3 MB.
const MaxImageSize = 3 * 1024 * 1024

// AllowedImageTypes lists the declared content types an upload may have.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageFile is an uploaded image as received from a form.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// CheckImage enforces the type allow-list and the size cap.
func CheckImage(img *ImageFile) error {
	if !AllowedImageTypes[img.ContentType] {
		return invalid("image", "image.type")
	}
	if img.Size > MaxImageSize || int64(len(img.Data)) > MaxImageSize {
		return invalid("image", "image.size")
	}
	return nil
}

// uploadImage checks, normalizes and stores img under prefix and returns its public URL.
// Nothing reaches the bucket unless every check passes.
func uploadImage(ctx context.Context, bucket storage.Bucket, prefix string, now time.Time, img *ImageFile) (string, error) {
	if err := CheckImage(img); err != nil {
		return "", err
	}
	normalized, err := media.Normalize(img.Data, img.ContentType)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) {
			return "", invalid("image", "image.invalid")
		}
		return "", err
	}
	contentType := img.ContentType
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}
	key := storage.ObjectKey(prefix, now, img.Filename)
	return bucket.Upload(ctx, key, bytes.NewReader(normalized), contentType)
}
