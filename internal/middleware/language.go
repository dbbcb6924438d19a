package middleware

import (
	"college-site/internal/i18n"
	"net/http"
	"time"
)

// LanguageCookie remembers the language picked with ?lang=.
const LanguageCookie = "lang"

// Language resolves the request language and stores it in the request
// context. A supported ?lang= value wins and is remembered in a cookie; then
// the cookie; then the Accept-Language header.
func Language(catalog *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get("lang"); catalog.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     LanguageCookie,
					Value:    lang,
					Path:     "/",
					MaxAge:   int(365 * 24 * time.Hour / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   r.TLS != nil,
				})
			} else if c, err := r.Cookie(LanguageCookie); err == nil && catalog.IsSupported(c.Value) {
				lang = c.Value
			} else {
				lang = catalog.Match(r.Header.Get("Accept-Language"))
			}
			next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), lang)))
		})
	}
}
