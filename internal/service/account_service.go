package service

import (
	"college-site/internal/data"
	"college-site/internal/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepository defines the database operations on admin accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *data.Admin) error
	GetByEmail(ctx context.Context, email string) (*data.Admin, error)
	GetByID(ctx context.Context, id string) (*data.Admin, error)
	LogLogin(ctx context.Context, l *data.LoginLog) error
	RecentLogins(ctx context.Context, limit int) ([]*data.LoginLog, error)
}

// AccountServicer defines the interface for admin sign-up, sign-in and lookups.
type AccountServicer interface {
	SignUp(ctx context.Context, email, password string) (*data.Admin, error)
	SignIn(ctx context.Context, email, password string) (*data.Admin, error)
	SignInExternal(ctx context.Context, email string) (*data.Admin, error)
	CurrentAdmin(ctx context.Context, id string) (*data.Admin, error)
	RecentLogins(ctx context.Context, limit int) ([]*data.LoginLog, error)
}

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

type signInInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type signUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

var accountMessages = map[string]string{
	"Email.required":    "auth.email_required",
	"Email.email":       "auth.email_invalid",
	"Password.required": "auth.password_required",
}

// AccountService manages admin accounts.
type AccountService struct {
	repo AccountRepository
	log  logger.Logger
	now  func() time.Time
	cost int
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo AccountRepository, log logger.Logger) *AccountService {
	return &AccountService{repo: repo, log: log, now: time.Now, cost: bcrypt.DefaultCost}
}

// SignUp creates an admin account with a hashed password.
func (s *AccountService) SignUp(ctx context.Context, email, password string) (*data.Admin, error) {
	email = normalizeEmail(email)
	if err := checkInput(&signUpInput{Email: email, Password: password}, accountMessages); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, invalid("password", "auth.password_short")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, data.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &data.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.With(map[string]interface{}{"admin_id": a.ID}).Info("Admin account created")
	return a, nil
}

// SignIn checks the credentials and records the sign-in.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*data.Admin, error) {
	email = normalizeEmail(email)
	if err := checkInput(&signInInput{Email: email, Password: password}, accountMessages); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.recordLogin(ctx, a)
	return a, nil
}

// SignInExternal signs in an existing admin whose email was verified by the
// identity provider. Unknown emails are rejected.
func (s *AccountService) SignInExternal(ctx context.Context, email string) (*data.Admin, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	s.recordLogin(ctx, a)
	return a, nil
}

// recordLogin writes the login log. A failed write does not undo the sign-in.
func (s *AccountService) recordLogin(ctx context.Context, a *data.Admin) {
	entry := &data.LoginLog{AdminID: a.ID, Email: a.Email, Date: s.now().UTC()}
	if err := s.repo.LogLogin(ctx, entry); err != nil {
		s.log.Error(err, "Failed to record admin login")
	}
}

// CurrentAdmin returns the admin with the given session id.
func (s *AccountService) CurrentAdmin(ctx context.Context, id string) (*data.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

// RecentLogins returns the latest sign-ins, newest first.
func (s *AccountService) RecentLogins(ctx context.Context, limit int) ([]*data.LoginLog, error) {
	return s.repo.RecentLogins(ctx, limit)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
