package middleware

import (
	"college-site/internal/auth"
	"college-site/internal/logger"
	"college-site/internal/session"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
)

// SignInPath is where anonymous visitors of the admin console are sent.
const SignInPath = "/admin/auth"

// Authorizer creates a new middleware for authorization.
// It resolves the subject from the session and checks it with Casbin.
// Anonymous requests refused under /admin are redirected to the sign-in
// page; every other refusal is a 403.
func Authorizer(e casbin.IEnforcer, sm session.Manager, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userInfo := &UserInfo{Subject: auth.RoleAnonymous}
			if id := sm.GetString(r.Context(), session.AdminIDKey); id != "" {
				userInfo = &UserInfo{Subject: auth.RoleAdmin, AdminID: id}
			}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(userInfo.Subject, r.URL.Path, r.Method)
			if err != nil {
				log.Error(err, "Authorization check failed")
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				if !userInfo.IsAdmin() && isAdminPath(r.URL.Path) {
					http.Redirect(w, r, SignInPath, http.StatusFound)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}
