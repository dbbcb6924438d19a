package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const newsColumns = `id, title, body, thumbnail_url, admin_id, updated_by, created_at, updated_at`

// SQLNewsRepository stores news articles using sqlx.
type SQLNewsRepository struct {
	db *sqlx.DB
}

// NewSQLNewsRepository creates a new SQLNewsRepository.
func NewSQLNewsRepository(db *sqlx.DB) *SQLNewsRepository {
	return &SQLNewsRepository{db: db}
}

// List returns every news article in the given order.
func (r *SQLNewsRepository) List(ctx context.Context, order Order) ([]*News, error) {
	var items []*News
	query := `SELECT ` + newsColumns + ` FROM news ORDER BY ` + order.clause()
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

// Recent returns the newest limit articles.
func (r *SQLNewsRepository) Recent(ctx context.Context, limit int) ([]*News, error) {
	var items []*News
	query := `SELECT ` + newsColumns + ` FROM news ORDER BY ` + NewestFirst.clause() + ` LIMIT ?`
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent news: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single article. It returns ErrNotFound when no row matches.
func (r *SQLNewsRepository) GetByID(ctx context.Context, id int64) (*News, error) {
	var n News
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = ?`
	if err := getOne(ctx, r.db, &n, query, id); err != nil {
		return nil, fmt.Errorf("failed to get news %d: %w", id, err)
	}
	return &n, nil
}

// Create inserts an article and sets its ID.
func (r *SQLNewsRepository) Create(ctx context.Context, n *News) error {
	query := `INSERT INTO news (title, body, thumbnail_url, admin_id, created_at)
		VALUES (:title, :body, :thumbnail_url, :admin_id, :created_at)`
	result, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read news id: %w", err)
	}
	n.ID = id
	return nil
}

// Update writes every editable column of the article with the matching ID.
func (r *SQLNewsRepository) Update(ctx context.Context, n *News) error {
	query := `UPDATE news SET title = :title, body = :body, thumbnail_url = :thumbnail_url,
		updated_by = :updated_by, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		return fmt.Errorf("failed to update news %d: %w", n.ID, err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("failed to update news %d: %w", n.ID, err)
	}
	return nil
}

// Delete removes the article with the given ID.
func (r *SQLNewsRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "news", id)
}

// Count returns the number of articles.
func (r *SQLNewsRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "news")
}
