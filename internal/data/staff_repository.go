package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const staffColumns = `id, name, position, department, email, phone, image_url, bio, admin_id, updated_by, created_at, updated_at`

// SQLStaffRepository stores the staff directory using sqlx.
type SQLStaffRepository struct {
	db *sqlx.DB
}

// NewSQLStaffRepository creates a new SQLStaffRepository.
func NewSQLStaffRepository(db *sqlx.DB) *SQLStaffRepository {
	return &SQLStaffRepository{db: db}
}

// List returns every staff member in the given order.
func (r *SQLStaffRepository) List(ctx context.Context, order Order) ([]*Staff, error) {
	var items []*Staff
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY ` + order.clause()
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return items, nil
}

// ListByDepartment returns the members of one department sorted by name.
func (r *SQLStaffRepository) ListByDepartment(ctx context.Context, department string) ([]*Staff, error) {
	var items []*Staff
	query := `SELECT ` + staffColumns + ` FROM staff WHERE department = ? ORDER BY ` + NameAscending.clause()
	if err := r.db.SelectContext(ctx, &items, query, department); err != nil {
		return nil, fmt.Errorf("failed to list staff of %q: %w", department, err)
	}
	return items, nil
}

// Departments returns the distinct department names in alphabetical order.
func (r *SQLStaffRepository) Departments(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, `SELECT DISTINCT department FROM staff ORDER BY department`); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return names, nil
}

// GetByID retrieves a single staff member. It returns ErrNotFound when no row matches.
func (r *SQLStaffRepository) GetByID(ctx context.Context, id int64) (*Staff, error) {
	var s Staff
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = ?`
	if err := getOne(ctx, r.db, &s, query, id); err != nil {
		return nil, fmt.Errorf("failed to get staff %d: %w", id, err)
	}
	return &s, nil
}

// Create inserts a staff member and sets its ID.
func (r *SQLStaffRepository) Create(ctx context.Context, s *Staff) error {
	query := `INSERT INTO staff (name, position, department, email, phone, image_url, bio, admin_id, created_at)
		VALUES (:name, :position, :department, :email, :phone, :image_url, :bio, :admin_id, :created_at)`
	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read staff id: %w", err)
	}
	s.ID = id
	return nil
}

// Update writes every editable column of the staff member with the matching ID.
func (r *SQLStaffRepository) Update(ctx context.Context, s *Staff) error {
	query := `UPDATE staff SET name = :name, position = :position, department = :department, email = :email,
		phone = :phone, image_url = :image_url, bio = :bio, updated_by = :updated_by, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return fmt.Errorf("failed to update staff %d: %w", s.ID, err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("failed to update staff %d: %w", s.ID, err)
	}
	return nil
}

// Delete removes the staff member with the given ID.
func (r *SQLStaffRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "staff", id)
}

// Count returns the number of staff members.
func (r *SQLStaffRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "staff")
}
