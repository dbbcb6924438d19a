package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const bookColumns = `id, title, author, isbn, description, cover_url, available, admin_id, updated_by, created_at, updated_at`

// SQLBookRepository stores the library catalog using sqlx.
type SQLBookRepository struct {
	db *sqlx.DB
}

// NewSQLBookRepository creates a new SQLBookRepository.
func NewSQLBookRepository(db *sqlx.DB) *SQLBookRepository {
	return &SQLBookRepository{db: db}
}

// List returns every book in the given order.
func (r *SQLBookRepository) List(ctx context.Context, order Order) ([]*Book, error) {
	var items []*Book
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY ` + order.clause()
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return items, nil
}

// Search returns books whose title or author contains q, ignoring case, or
// whose ISBN contains q. Results are sorted by title.
func (r *SQLBookRepository) Search(ctx context.Context, q string) ([]*Book, error) {
	var items []*Book
	like := "%" + strings.ToLower(q) + "%"
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR isbn LIKE ?
		ORDER BY ` + TitleAscending.clause()
	if err := r.db.SelectContext(ctx, &items, query, like, like, "%"+q+"%"); err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single book. It returns ErrNotFound when no row matches.
func (r *SQLBookRepository) GetByID(ctx context.Context, id int64) (*Book, error) {
	var b Book
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	if err := getOne(ctx, r.db, &b, query, id); err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &b, nil
}

// Create inserts a book and sets its ID.
func (r *SQLBookRepository) Create(ctx context.Context, b *Book) error {
	query := `INSERT INTO books (title, author, isbn, description, cover_url, available, admin_id, created_at)
		VALUES (:title, :author, :isbn, :description, :cover_url, :available, :admin_id, :created_at)`
	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read book id: %w", err)
	}
	b.ID = id
	return nil
}

// Update writes every editable column of the book with the matching ID.
func (r *SQLBookRepository) Update(ctx context.Context, b *Book) error {
	query := `UPDATE books SET title = :title, author = :author, isbn = :isbn, description = :description,
		cover_url = :cover_url, available = :available, updated_by = :updated_by, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", b.ID, err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("failed to update book %d: %w", b.ID, err)
	}
	return nil
}

// Delete removes the book with the given ID.
func (r *SQLBookRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "books", id)
}

// Count returns the number of books.
func (r *SQLBookRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "books")
}
