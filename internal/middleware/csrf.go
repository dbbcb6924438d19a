package middleware

import (
	"college-site/internal/logger"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRF returns a middleware that rejects cross-origin state-changing requests.
// filippo.io/csrf/gorilla checks Fetch metadata headers instead of tokens, so
// forms need no hidden field. trustedOrigins are host:port values.
func CSRF(authKey []byte, trustedOrigins []string, log logger.Logger) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			log.With(map[string]interface{}{
				"reason": reason,
				"method": r.Method,
				"path":   r.URL.Path,
				"origin": r.Header.Get("Origin"),
			}).Warn("CSRF validation failed")
			http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
		})),
	}
	if len(trustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(trustedOrigins))
	}
	return csrf.Protect(authKey, opts...)
}
