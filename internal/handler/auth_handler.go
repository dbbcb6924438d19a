package handler

import (
	"college-site/internal/auth"
	"college-site/internal/content"
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/view"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"
)

const (
	adminHomePath = "/admin/home"
	stateCookie   = "oidc_state"
)

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	base
	auth *auth.Authenticator
}

// NewAuthHandler creates a new AuthHandler. a may be nil when single sign-on
// is not configured.
func NewAuthHandler(accounts service.AccountServicer, a *auth.Authenticator, sm session.Manager, v *view.View, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		base: base{view: v, log: log, sm: sm, accounts: accounts},
		auth: a,
	}
}

// formHandler renders the sign-in form, or the sign-up form with ?mode=signup.
func (h *AuthHandler) formHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if middleware.GetUserInfo(r.Context()).IsAdmin() {
		http.Redirect(w, r, adminHomePath, http.StatusFound)
		return nil
	}
	return h.page(w, r, r.URL.Query().Get("mode") == "signup", "", content.FormState{})
}

// signInHandler checks the credentials and starts an admin session.
func (h *AuthHandler) signInHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	email := r.FormValue("email")
	var form content.FormState
	ok := content.Submit(&form, func() error {
		admin, err := h.accounts.SignIn(r.Context(), email, r.FormValue("password"))
		if err != nil {
			return err
		}
		return h.start(r, admin.ID)
	}, func() {
		http.Redirect(w, r, adminHomePath, http.StatusSeeOther)
	}, h.authMessage(r, "auth.signin_failed"))
	if ok {
		return nil
	}
	return h.page(w, r, false, email, form)
}

// signUpHandler creates an account and sends the visitor back to sign in.
func (h *AuthHandler) signUpHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	email := r.FormValue("email")
	var form content.FormState
	ok := content.Submit(&form, func() error {
		_, err := h.accounts.SignUp(r.Context(), email, r.FormValue("password"))
		return err
	}, func() {
		h.sm.Put(r.Context(), session.FlashKey, h.view.T(r, "auth.signup_success"))
		http.Redirect(w, r, middleware.SignInPath, http.StatusSeeOther)
	}, h.authMessage(r, "auth.signup_failed"))
	if ok {
		return nil
	}
	return h.page(w, r, true, email, form)
}

// logoutHandler destroys the session and returns to the sign-in page.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sm.Destroy(r.Context()); err != nil {
		h.log.Error(err, "Failed to destroy session")
	}
	http.Redirect(w, r, middleware.SignInPath, http.StatusSeeOther)
}

// handleLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		http.NotFound(w, r)
		return
	}
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/admin/auth",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// handleCallback is the redirect URL for the OIDC provider. The verified
// email must belong to an existing admin.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		http.NotFound(w, r)
		return
	}
	// The state is single-use whatever the outcome.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Path:     "/admin/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	if err := h.callback(r); err != nil {
		h.log.Error(err, "Single sign-on failed")
		h.sm.Put(r.Context(), session.FlashKey, h.view.T(r, "auth.sso_failed"))
		http.Redirect(w, r, middleware.SignInPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, adminHomePath, http.StatusFound)
}

func (h *AuthHandler) callback(r *http.Request) error {
	// Verify the state parameter to prevent CSRF attacks.
	c, err := r.Cookie(stateCookie)
	if err != nil {
		return errors.New("state cookie not found")
	}
	if r.URL.Query().Get("state") != c.Value {
		return errors.New("state did not match")
	}

	email, err := h.auth.VerifiedEmail(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		return err
	}

	admin, err := h.accounts.SignInExternal(r.Context(), email)
	if err != nil {
		return err
	}
	return h.start(r, admin.ID)
}

// start binds the session to adminID under a fresh token.
func (h *AuthHandler) start(r *http.Request, adminID string) error {
	if err := h.sm.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sm.Put(r.Context(), session.AdminIDKey, adminID)
	return nil
}

// authMessage describes a failed auth form. Unexpected errors are logged and
// shown as fallback.
func (h *AuthHandler) authMessage(r *http.Request, fallback string) func(error) string {
	return func(err error) string {
		key := service.MessageKey(err)
		if key == "errors.generic" {
			h.log.Error(err, "Authentication failed")
			key = fallback
		}
		return h.view.T(r, key)
	}
}

func (h *AuthHandler) page(w http.ResponseWriter, r *http.Request, signUp bool, email string, form content.FormState) *middleware.AppError {
	data := map[string]interface{}{
		"SignUp": signUp,
		"Email":  email,
		"Notice": h.sm.PopString(r.Context(), session.FlashKey),
		"SSO":    h.auth != nil,

		"MinPassword": service.MinPasswordLength,
	}
	return h.formPage(w, r, "admin_auth.html", form, data)
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
