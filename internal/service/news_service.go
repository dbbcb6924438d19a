package service

import (
	"college-site/internal/data"
	"college-site/internal/logger"
	"college-site/internal/storage"
	"context"
	"fmt"
	"strings"
	"time"
)

// NewsRepository defines the database operations on news articles.
type NewsRepository interface {
	List(ctx context.Context, order data.Order) ([]*data.News, error)
	Recent(ctx context.Context, limit int) ([]*data.News, error)
	GetByID(ctx context.Context, id int64) (*data.News, error)
	Create(ctx context.Context, n *data.News) error
	Update(ctx context.Context, n *data.News) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// NewsServicer defines the interface for managing and publishing news.
type NewsServicer interface {
	List(ctx context.Context) ([]*data.News, error)
	Published(ctx context.Context) ([]*data.News, error)
	Get(ctx context.Context, id int64) (*data.News, error)
	Create(ctx context.Context, adminID string, in NewsInput) (*data.News, error)
	Update(ctx context.Context, id int64, adminID string, in NewsInput) (*data.News, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// NewsInput is the submitted news form. Image is nil when no file was chosen.
type NewsInput struct {
	Title string `validate:"required"`
	Body  string `validate:"required"`
	Image *ImageFile
}

var newsMessages = map[string]string{
	"Title.required": "news.title_required",
	"Body.required":  "news.body_required",
}

// NewsService provides business logic for news articles.
type NewsService struct {
	repo     NewsRepository
	bucket   storage.Bucket
	cache    Cache
	log      logger.Logger
	renderer *renderer
	now      func() time.Time
}

// NewNewsService creates a new NewsService.
func NewNewsService(repo NewsRepository, bucket storage.Bucket, cache Cache, log logger.Logger) *NewsService {
	return &NewsService{
		repo:     repo,
		bucket:   bucket,
		cache:    cache,
		log:      log,
		renderer: newRenderer(),
		now:      time.Now,
	}
}

// List returns every article, newest first, for the admin console.
func (s *NewsService) List(ctx context.Context) ([]*data.News, error) {
	return s.repo.List(ctx, data.NewestFirst)
}

// Published returns every article, newest first, with its body rendered.
func (s *NewsService) Published(ctx context.Context) ([]*data.News, error) {
	return cached(ctx, s.cache, s.log, "news", func(ctx context.Context) ([]*data.News, error) {
		items, err := s.repo.List(ctx, data.NewestFirst)
		if err != nil {
			return nil, err
		}
		s.renderAll(items)
		return items, nil
	})
}

// Recent returns the newest limit articles with their bodies rendered.
func (s *NewsService) Recent(ctx context.Context, limit int) ([]*data.News, error) {
	items, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.renderAll(items)
	return items, nil
}

func (s *NewsService) renderAll(items []*data.News) {
	for _, n := range items {
		n.HTMLBody = s.renderer.render(n.Body)
	}
}

// Get retrieves a single article.
func (s *NewsService) Get(ctx context.Context, id int64) (*data.News, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in, uploads its image if any and inserts the article.
func (s *NewsService) Create(ctx context.Context, adminID string, in NewsInput) (*data.News, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if err := s.check(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n := &data.News{
		Audit: data.Audit{AdminID: adminID, CreatedAt: now},
		Title: in.Title,
		Body:  in.Body,
	}
	if in.Image != nil {
		url, err := uploadImage(ctx, s.bucket, storage.NewsThumbnails, now, in.Image)
		if err != nil {
			return nil, err
		}
		n.ThumbnailURL = &url
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save news: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return n, nil
}

// Update validates in and rewrites the article with the given id. A new
// image replaces the thumbnail; without one the current thumbnail is kept.
func (s *NewsService) Update(ctx context.Context, id int64, adminID string, in NewsInput) (*data.News, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if err := s.check(in); err != nil {
		return nil, err
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n.Title = in.Title
	n.Body = in.Body
	if in.Image != nil {
		url, err := uploadImage(ctx, s.bucket, storage.NewsThumbnails, now, in.Image)
		if err != nil {
			return nil, err
		}
		n.ThumbnailURL = &url
	}
	n.Touch(adminID, now)

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save news: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return n, nil
}

// check runs the field rules and the image rules before anything is written.
func (s *NewsService) check(in NewsInput) error {
	if err := checkInput(&in, newsMessages); err != nil {
		return err
	}
	if in.Image != nil {
		return CheckImage(in.Image)
	}
	return nil
}

// Delete removes the article with the given id.
func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete news %d: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// Count returns the number of articles.
func (s *NewsService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
