// Package media checks and normalizes uploaded images before they are stored.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"
)

// MaxDimension is the longest edge kept after normalizing.
const MaxDimension = 1600

// ErrInvalidImage is returned when the content does not decode as the declared type.
var ErrInvalidImage = errors.New("invalid image")

// Normalize decodes data, applies its EXIF orientation and shrinks it to fit
// MaxDimension. JPEG and PNG are re-encoded in their own format. WebP has no
// pure Go encoder, so a valid WebP is returned unchanged.
func Normalize(data []byte, contentType string) ([]byte, error) {
	switch contentType {
	case "image/webp":
		if _, err := webp.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		return data, nil
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img = fit(img)

	format := imaging.JPEG
	if contentType == "image/png" {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxDimension && b.Dy() <= MaxDimension {
		return img
	}
	return imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
}
