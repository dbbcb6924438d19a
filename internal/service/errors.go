package service

import (
	"college-site/internal/media"
	"college-site/internal/storage"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when sign-in fails for any account reason.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when signing up with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError reports one rejected form field. Key is the message catalog
// key shown to the user.
type ValidationError struct {
	Field string
	Key   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Key)
}

func invalid(field, key string) error {
	return &ValidationError{Field: field, Key: key}
}

// MessageKey maps err to the catalog key of the one message a form shows for it.
// Anything unrecognised is reported with the generic message.
func MessageKey(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Key
	case errors.Is(err, ErrInvalidCredentials):
		return "auth.invalid_credentials"
	case errors.Is(err, ErrEmailTaken):
		return "auth.email_taken"
	case errors.Is(err, storage.ErrNotConfigured):
		return "image.unavailable"
	case errors.Is(err, media.ErrInvalidImage):
		return "image.invalid"
	default:
		return "errors.generic"
	}
}
