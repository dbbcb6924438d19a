package auth

import (
	"college-site/internal/config"
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Authenticator is a struct that holds the OIDC provider, OAuth2 config, and ID token verifier.
type Authenticator struct {
	*oidc.Provider
	*oauth2.Config
	*oidc.IDTokenVerifier
}

// Claims are the ID token claims used to match an admin account.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// ErrEmailUnverified is returned when the provider has not verified the
// account's email address.
var ErrEmailUnverified = errors.New("email not verified by identity provider")

// NewAuthenticator discovers the provider at cfg.IssuerURL and builds the
// OAuth2 configuration for it.
func NewAuthenticator(ctx context.Context, cfg config.OIDCConfig) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, err
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &Authenticator{
		Provider:        provider,
		Config:          oauth2Config,
		IDTokenVerifier: verifier,
	}, nil
}

// VerifiedEmail trades an authorization code for an ID token and returns the
// email it vouches for. The issuer, audience and expiry are checked by the
// verifier.
func (a *Authenticator) VerifiedEmail(ctx context.Context, code string) (string, error) {
	token, err := a.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", errors.New("no id_token field in oauth2 token")
	}
	idToken, err := a.IDTokenVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("id token: %w", err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return "", err
	}
	if !claims.EmailVerified {
		return "", ErrEmailUnverified
	}
	return claims.Email, nil
}
