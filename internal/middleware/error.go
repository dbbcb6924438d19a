package middleware

import (
	"college-site/internal/logger"
	"college-site/internal/view"
	"fmt"
	"net/http"
)

// AppError represents a custom error type for the application.
// Message is a catalog key shown on the error page.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// NotFound builds the AppError for a missing page or record.
func NotFound(err error) *AppError {
	return &AppError{Error: err, Message: "errors.not_found", Code: http.StatusNotFound}
}

// Internal builds the AppError for an unexpected failure.
func Internal(err error) *AppError {
	return &AppError{Error: err, Message: "errors.server", Code: http.StatusInternalServerError}
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into user-friendly error pages.
func Error(log logger.Logger, v *view.View) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					renderError(w, r, log, v, http.StatusInternalServerError, "errors.server")
				}
			}()

			if appErr := next(w, r); appErr != nil {
				log.With(map[string]interface{}{
					"status": appErr.Code,
					"path":   r.URL.Path,
				}).Error(appErr.Error, appErr.Message)
				renderError(w, r, log, v, appErr.Code, appErr.Message)
			}
		})
	}
}

func renderError(w http.ResponseWriter, r *http.Request, log logger.Logger, v *view.View, code int, key string) {
	data := map[string]interface{}{
		"StatusCode": code,
		"StatusText": v.T(r, key),
	}
	if err := v.RenderStatus(w, r, code, "error.html", data); err != nil {
		log.Error(err, "Failed to render error page")
		http.Error(w, http.StatusText(code), code)
	}
}
