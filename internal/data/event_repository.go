package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const eventColumns = `id, title, description, date, location, image_url, admin_id, updated_by, created_at, updated_at`

// SQLEventRepository stores events using sqlx.
type SQLEventRepository struct {
	db *sqlx.DB
}

// NewSQLEventRepository creates a new SQLEventRepository.
func NewSQLEventRepository(db *sqlx.DB) *SQLEventRepository {
	return &SQLEventRepository{db: db}
}

// List returns every event in the given order.
func (r *SQLEventRepository) List(ctx context.Context, order Order) ([]*Event, error) {
	var items []*Event
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY ` + order.clause()
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return items, nil
}

// Upcoming returns at most limit events dated at or after from, soonest first.
func (r *SQLEventRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]*Event, error) {
	var items []*Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE date >= ? ORDER BY ` + DateAscending.clause() + ` LIMIT ?`
	if err := r.db.SelectContext(ctx, &items, query, from.UTC(), limit); err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single event. It returns ErrNotFound when no row matches.
func (r *SQLEventRepository) GetByID(ctx context.Context, id int64) (*Event, error) {
	var e Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	if err := getOne(ctx, r.db, &e, query, id); err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return &e, nil
}

// Create inserts an event and sets its ID.
func (r *SQLEventRepository) Create(ctx context.Context, e *Event) error {
	query := `INSERT INTO events (title, description, date, location, image_url, admin_id, created_at)
		VALUES (:title, :description, :date, :location, :image_url, :admin_id, :created_at)`
	result, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}
	e.ID = id
	return nil
}

// Update writes every editable column of the event with the matching ID.
func (r *SQLEventRepository) Update(ctx context.Context, e *Event) error {
	query := `UPDATE events SET title = :title, description = :description, date = :date,
		location = :location, image_url = :image_url, updated_by = :updated_by, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", e.ID, err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("failed to update event %d: %w", e.ID, err)
	}
	return nil
}

// Delete removes the event with the given ID.
func (r *SQLEventRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "events", id)
}

// Count returns the number of events.
func (r *SQLEventRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "events")
}
