package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Order selects the sort order of a list query.
type Order int

const (
	// NewestFirst sorts by creation time, newest first.
	NewestFirst Order = iota
	// DateAscending sorts events by their date, soonest first.
	DateAscending
	// DateDescending sorts events by their date, latest first.
	DateDescending
	// TitleAscending sorts alphabetically by title.
	TitleAscending
	// NameAscending sorts alphabetically by name.
	NameAscending
)

// orderClauses maps each Order to a fixed ORDER BY clause. The id tie-breaker
// keeps rows with equal keys in a stable order.
var orderClauses = map[Order]string{
	NewestFirst:    "created_at DESC, id DESC",
	DateAscending:  "date ASC, id ASC",
	DateDescending: "date DESC, id DESC",
	TitleAscending: "title ASC, id ASC",
	NameAscending:  "name ASC, id ASC",
}

func (o Order) clause() string {
	if c, ok := orderClauses[o]; ok {
		return c
	}
	return orderClauses[NewestFirst]
}

// getOne runs a single-row query and maps sql.ErrNoRows to ErrNotFound.
func getOne(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	if err := db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// requireAffected turns an update or delete that touched no rows into ErrNotFound.
func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteByID removes one row from table. table is always a package constant.
func deleteByID(ctx context.Context, db *sqlx.DB, table string, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return requireAffected(result)
}

// countRows returns the number of rows in table.
func countRows(ctx context.Context, db *sqlx.DB, table string) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
