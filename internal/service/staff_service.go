package service

import (
	"college-site/internal/data"
	"college-site/internal/logger"
	"context"
	"fmt"
	"strings"
	"time"
)

// StaffRepository defines the database operations on the staff directory.
type StaffRepository interface {
	List(ctx context.Context, order data.Order) ([]*data.Staff, error)
	ListByDepartment(ctx context.Context, department string) ([]*data.Staff, error)
	Departments(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id int64) (*data.Staff, error)
	Create(ctx context.Context, s *data.Staff) error
	Update(ctx context.Context, s *data.Staff) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// StaffServicer defines the interface for managing and browsing the staff directory.
type StaffServicer interface {
	List(ctx context.Context) ([]*data.Staff, error)
	Directory(ctx context.Context, department string) ([]*data.Staff, error)
	Departments(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int64) (*data.Staff, error)
	Create(ctx context.Context, adminID string, in StaffInput) (*data.Staff, error)
	Update(ctx context.Context, id int64, adminID string, in StaffInput) (*data.Staff, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// StaffInput is the submitted staff form.
type StaffInput struct {
	Name       string `validate:"required"`
	Position   string `validate:"required"`
	Department string `validate:"required"`
	Email      string `validate:"omitempty,email"`
	Phone      string
	ImageURL   string `validate:"omitempty,url"`
	Bio        string
}

var staffMessages = map[string]string{
	"Name.required":       "staff.name_required",
	"Position.required":   "staff.position_required",
	"Department.required": "staff.department_required",
	"Email.email":         "staff.email_invalid",
	"ImageURL.url":        "image.invalid",
}

// StaffService provides business logic for the staff directory.
type StaffService struct {
	repo  StaffRepository
	cache Cache
	log   logger.Logger
	now   func() time.Time
}

// NewStaffService creates a new StaffService.
func NewStaffService(repo StaffRepository, cache Cache, log logger.Logger) *StaffService {
	return &StaffService{repo: repo, cache: cache, log: log, now: time.Now}
}

// List returns every staff member, newest first, for the admin console.
func (s *StaffService) List(ctx context.Context) ([]*data.Staff, error) {
	return s.repo.List(ctx, data.NewestFirst)
}

// Directory returns staff sorted by name, limited to department when it is set.
func (s *StaffService) Directory(ctx context.Context, department string) ([]*data.Staff, error) {
	department = strings.TrimSpace(department)
	if department != "" {
		return s.repo.ListByDepartment(ctx, department)
	}
	return cached(ctx, s.cache, s.log, "staff", func(ctx context.Context) ([]*data.Staff, error) {
		return s.repo.List(ctx, data.NameAscending)
	})
}

// Departments returns the distinct department names.
func (s *StaffService) Departments(ctx context.Context) ([]string, error) {
	return cached(ctx, s.cache, s.log, "departments", s.repo.Departments)
}

// Get retrieves a single staff member.
func (s *StaffService) Get(ctx context.Context, id int64) (*data.Staff, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in and inserts the staff member.
func (s *StaffService) Create(ctx context.Context, adminID string, in StaffInput) (*data.Staff, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	m := &data.Staff{Audit: data.Audit{AdminID: adminID, CreatedAt: s.now().UTC()}}
	applyStaff(m, in)

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return m, nil
}

// Update validates in and rewrites the staff member with the given id.
func (s *StaffService) Update(ctx context.Context, id int64, adminID string, in StaffInput) (*data.Staff, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyStaff(m, in)
	m.Touch(adminID, s.now().UTC())

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}
	invalidate(ctx, s.cache, s.log)
	return m, nil
}

func (s *StaffService) check(in *StaffInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	in.Department = strings.TrimSpace(in.Department)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Bio = strings.TrimSpace(in.Bio)
	return checkInput(in, staffMessages)
}

func applyStaff(m *data.Staff, in StaffInput) {
	m.Name = in.Name
	m.Position = in.Position
	m.Department = in.Department
	m.Email = data.NullString(in.Email)
	m.Phone = data.NullString(in.Phone)
	m.ImageURL = data.NullString(in.ImageURL)
	m.Bio = data.NullString(in.Bio)
}

// Delete removes the staff member with the given id.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete staff %d: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// Count returns the number of staff members.
func (s *StaffService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
