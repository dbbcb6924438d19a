package service

import (
	"college-site/internal/data"
	"college-site/internal/logger"
	"context"
	"fmt"
	"strings"
	"time"
)

// BookRepository defines the database operations on the library catalog.
type BookRepository interface {
	List(ctx context.Context, order data.Order) ([]*data.Book, error)
	Search(ctx context.Context, q string) ([]*data.Book, error)
	GetByID(ctx context.Context, id int64) (*data.Book, error)
	Create(ctx context.Context, b *data.Book) error
	Update(ctx context.Context, b *data.Book) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// BookServicer defines the interface for managing and browsing the library.
type BookServicer interface {
	List(ctx context.Context) ([]*data.Book, error)
	Catalog(ctx context.Context, q string) ([]*data.Book, error)
	Get(ctx context.Context, id int64) (*data.Book, error)
	Create(ctx context.Context, adminID string, in BookInput) (*data.Book, error)
	Update(ctx context.Context, id int64, adminID string, in BookInput) (*data.Book, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// BookInput is the submitted book form.
type BookInput struct {
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	ISBN        string
	Description string
	CoverURL    string `validate:"omitempty,url"`
	Available   bool
}

var bookMessages = map[string]string{
	"Title.required":  "library.title_required",
	"Author.required": "library.author_required",
	"CoverURL.url":    "image.invalid",
}

// BookService provides business logic for the library catalog.
type BookService struct {
	repo  BookRepository
	cache Cache
	log   logger.Logger
	now   func() time.Time
}

// NewBookService creates a new BookService.
func NewBookService(repo BookRepository, cache Cache, log logger.Logger) *BookService {
	return &BookService{repo: repo, cache: cache, log: log, now: time.Now}
}

// List returns every book, newest first, for the admin console.
func (s *BookService) List(ctx context.Context) ([]*data.Book, error) {
	return s.repo.List(ctx, data.NewestFirst)
}

// Catalog returns the public catalog sorted by title. A non-empty q narrows
// it to books matching the title, author or ISBN.
func (s *BookService) Catalog(ctx context.Context, q string) ([]*data.Book, error) {
	q = strings.TrimSpace(q)
	if q != "" {
		return s.repo.Search(ctx, q)
	}
	return cached(ctx, s.cache, s.log, "books", func(ctx context.Context) ([]*data.Book, error) {
		return s.repo.List(ctx, data.TitleAscending)
	})
}

// Get retrieves a single book.
func (s *BookService) Get(ctx context.Context, id int64) (*data.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in and inserts the book.
func (s *BookService) Create(ctx context.Context, adminID string, in BookInput) (*data.Book, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	b := &data.Book{Audit: data.Audit{AdminID: adminID, CreatedAt: s.now().UTC()}}
	applyBook(b, in)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return b, nil
}

// Update validates in and rewrites the book with the given id.
func (s *BookService) Update(ctx context.Context, id int64, adminID string, in BookInput) (*data.Book, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBook(b, in)
	b.Touch(adminID, s.now().UTC())

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return b, nil
}

func (s *BookService) check(in *BookInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Description = strings.TrimSpace(in.Description)
	in.CoverURL = strings.TrimSpace(in.CoverURL)
	return checkInput(in, bookMessages)
}

func applyBook(b *data.Book, in BookInput) {
	b.Title = in.Title
	b.Author = in.Author
	b.ISBN = data.NullString(in.ISBN)
	b.Description = data.NullString(in.Description)
	b.CoverURL = data.NullString(in.CoverURL)
	b.Available = in.Available
}

// Delete removes the book with the given id.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// Count returns the number of books.
func (s *BookService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
