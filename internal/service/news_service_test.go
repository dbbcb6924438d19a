//go:build unit

package service

import (
	"bytes"
	"college-site/internal/cache"
	"college-site/internal/config"
	"college-site/internal/data"
	"college-site/internal/logger"
	"college-site/internal/storage"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = "3b7c2a52-9f7e-4d3c-8d1a-1f1f1f1f1f1f"

// newTestCache creates a new in-memory cache for testing.
func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(config.CacheConfig{FilePath: ":memory:", TTLSeconds: 60})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func pngImage(t *testing.T) *ImageFile {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &ImageFile{Filename: "campus day.png", ContentType: "image/png", Size: int64(buf.Len()), Data: buf.Bytes()}
}

func newNewsService(repo *mockNewsRepository, bucket *mockBucket, c Cache) *NewsService {
	s := NewNewsService(repo, bucket, c, logger.Nop())
	s.now = func() time.Time { return time.UnixMilli(1717000000123) }
	return s
}

func assertValidation(t *testing.T, err error, key string) {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	assert.Equal(t, key, ve.Key)
}

func TestNewsService_CreateRequiresTitleThenBody(t *testing.T) {
	repo, bucket := newMockNewsRepository(), &mockBucket{}
	s := newNewsService(repo, bucket, nil)

	_, err := s.Create(context.Background(), adminID, NewsInput{Title: "", Body: ""})
	assertValidation(t, err, "news.title_required")

	_, err = s.Create(context.Background(), adminID, NewsInput{Title: "Exam schedule", Body: "   "})
	assertValidation(t, err, "news.body_required")

	assert.Zero(t, repo.createCalls, "nothing may be inserted when validation fails")
	assert.Empty(t, bucket.keys)
}

func TestNewsService_CreateRejectsImageBeforeUpload(t *testing.T) {
	tests := []struct {
		name string
		img  *ImageFile
		key  string
	}{
		{"gif type", &ImageFile{Filename: "a.gif", ContentType: "image/gif", Size: 10, Data: []byte("GIF89a")}, "image.type"},
		{"too large", &ImageFile{Filename: "a.png", ContentType: "image/png", Size: MaxImageSize + 1}, "image.size"},
		{"not an image", &ImageFile{Filename: "a.png", ContentType: "image/png", Size: 4, Data: []byte("nope")}, "image.invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, bucket := newMockNewsRepository(), &mockBucket{}
			s := newNewsService(repo, bucket, nil)

			_, err := s.Create(context.Background(), adminID, NewsInput{Title: "t", Body: "b", Image: tt.img})
			assertValidation(t, err, tt.key)
			assert.Empty(t, bucket.keys)
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestNewsService_CreateWithImage(t *testing.T) {
	repo, bucket := newMockNewsRepository(), &mockBucket{}
	s := newNewsService(repo, bucket, nil)

	n, err := s.Create(context.Background(), adminID, NewsInput{Title: " Open day ", Body: "Visit us.", Image: pngImage(t)})
	require.NoError(t, err)

	require.Len(t, bucket.keys, 1)
	assert.Equal(t, "news-thumbnails/1717000000123-campus-day.png", bucket.keys[0])
	assert.Equal(t, "image/png", bucket.types[0])
	require.NotNil(t, n.ThumbnailURL)
	assert.Equal(t, "https://cdn.example.com/news-thumbnails/1717000000123-campus-day.png", *n.ThumbnailURL)
	assert.Equal(t, "Open day", n.Title)
	assert.Equal(t, adminID, n.AdminID)
	assert.Equal(t, 1, repo.createCalls)
	assert.Nil(t, n.UpdatedAt)
}

func TestNewsService_CreateUploadFailureWritesNothing(t *testing.T) {
	repo := newMockNewsRepository()
	s := newNewsService(repo, &mockBucket{errToReturn: storage.ErrNotConfigured}, nil)

	_, err := s.Create(context.Background(), adminID, NewsInput{Title: "t", Body: "b", Image: pngImage(t)})
	assert.ErrorIs(t, err, storage.ErrNotConfigured)
	assert.Equal(t, "image.unavailable", MessageKey(err))
	assert.Zero(t, repo.createCalls)
}

func TestNewsService_CreateRemoteFailure(t *testing.T) {
	repo := newMockNewsRepository()
	repo.errToReturn = errors.New("connection reset")
	s := newNewsService(repo, &mockBucket{}, nil)

	_, err := s.Create(context.Background(), adminID, NewsInput{Title: "t", Body: "b"})
	require.Error(t, err)
	assert.Equal(t, "errors.generic", MessageKey(err))
}

func TestNewsService_UpdateKeepsThumbnailAndStampsEditor(t *testing.T) {
	repo, bucket := newMockNewsRepository(), &mockBucket{}
	s := newNewsService(repo, bucket, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "author", NewsInput{Title: "t", Body: "b", Image: pngImage(t)})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, adminID, NewsInput{Title: "t2", Body: "b2"})
	require.NoError(t, err)

	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, created.ThumbnailURL, updated.ThumbnailURL)
	assert.Equal(t, "author", updated.AdminID)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, adminID, *updated.UpdatedBy)
	require.NotNil(t, updated.UpdatedAt)
	assert.Len(t, bucket.keys, 1)
}

func TestNewsService_UpdateMissing(t *testing.T) {
	s := newNewsService(newMockNewsRepository(), &mockBucket{}, nil)
	_, err := s.Update(context.Background(), 42, adminID, NewsInput{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestNewsService_PublishedRendersAndSanitizes(t *testing.T) {
	repo := newMockNewsRepository()
	s := newNewsService(repo, &mockBucket{}, nil)
	_, err := s.Create(context.Background(), adminID, NewsInput{Title: "t", Body: "**bold**<script>alert(1)</script>"})
	require.NoError(t, err)

	items, err := s.Published(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	html := string(items[0].HTMLBody)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.False(t, strings.Contains(html, "<script>"))
}

func TestNewsService_PublishedIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMockNewsRepository()
	s := newNewsService(repo, &mockBucket{}, newTestCache(t))

	_, err := s.Create(ctx, adminID, NewsInput{Title: "first", Body: "b"})
	require.NoError(t, err)

	_, err = s.Published(ctx)
	require.NoError(t, err)
	items, err := s.Published(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, repo.listCalls)

	_, err = s.Create(ctx, adminID, NewsInput{Title: "second", Body: "b"})
	require.NoError(t, err)

	items, err = s.Published(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestNewsService_Delete(t *testing.T) {
	ctx := context.Background()
	s := newNewsService(newMockNewsRepository(), &mockBucket{}, nil)
	n, err := s.Create(ctx, adminID, NewsInput{Title: "t", Body: "b"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, n.ID))
	assert.ErrorIs(t, s.Delete(ctx, n.ID), data.ErrNotFound)
}
