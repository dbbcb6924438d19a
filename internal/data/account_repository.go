package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AccountRepository handles database operations for admin accounts and their sign-in history.
type AccountRepository struct {
	DB *sqlx.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

// Create inserts a new admin account.
func (r *AccountRepository) Create(ctx context.Context, a *Admin) error {
	query := `INSERT INTO admins (id, email, password_hash, created_at) VALUES (:id, :email, :password_hash, :created_at)`
	if _, err := r.DB.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetByEmail finds an admin by email. It returns ErrNotFound when no account matches.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	if err := getOne(ctx, r.DB, &a, `SELECT id, email, password_hash, created_at FROM admins WHERE email = ?`, email); err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return &a, nil
}

// GetByID finds an admin by id. It returns ErrNotFound when no account matches.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	var a Admin
	if err := getOne(ctx, r.DB, &a, `SELECT id, email, password_hash, created_at FROM admins WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}
	return &a, nil
}

// LogLogin records a successful sign-in.
func (r *AccountRepository) LogLogin(ctx context.Context, l *LoginLog) error {
	res, err := r.DB.NamedExecContext(ctx, `INSERT INTO admin_login_logs (admin_id, email, date) VALUES (:admin_id, :email, :date)`, l)
	if err != nil {
		return fmt.Errorf("failed to log admin login: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read login log id: %w", err)
	}
	l.ID = id
	return nil
}

// RecentLogins returns the latest limit sign-ins, newest first.
func (r *AccountRepository) RecentLogins(ctx context.Context, limit int) ([]*LoginLog, error) {
	var logs []*LoginLog
	err := r.DB.SelectContext(ctx, &logs, `SELECT id, admin_id, email, date FROM admin_login_logs ORDER BY date DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent logins: %w", err)
	}
	return logs, nil
}
