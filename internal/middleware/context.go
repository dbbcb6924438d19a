package middleware

import (
	"college-site/internal/auth"
	"context"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// UserInfo describes who is making the request.
type UserInfo struct {
	// Subject is the Casbin subject, RoleAdmin or RoleAnonymous.
	Subject string
	// AdminID is the signed-in admin's id; empty for anonymous visitors.
	AdminID string
}

// IsAdmin reports whether an admin is signed in.
func (u *UserInfo) IsAdmin() bool {
	return u.AdminID != ""
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{Subject: auth.RoleAnonymous}
}

// SetUserInfo adds the user information to the request context.
func SetUserInfo(ctx context.Context, userInfo *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}
