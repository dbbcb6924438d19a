package handler

import (
	"college-site/internal/content"
	"college-site/internal/data"
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/view"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// base carries what every handler needs to render pages and talk to the session.
type base struct {
	view     *view.View
	log      logger.Logger
	sm       session.Manager
	accounts service.AccountServicer
}

func (b base) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) *middleware.AppError {
	return b.renderStatus(w, r, http.StatusOK, name, data)
}

func (b base) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) *middleware.AppError {
	if err := b.view.RenderStatus(w, r, status, name, data); err != nil {
		return middleware.Internal(err)
	}
	return nil
}

// adminData starts the template data of an admin page with the navbar fields.
func (b base) adminData(r *http.Request) map[string]interface{} {
	data := map[string]interface{}{
		"Flash": b.sm.PopString(r.Context(), session.FlashKey),
	}
	if id := adminID(r); id != "" && b.accounts != nil {
		admin, err := b.accounts.CurrentAdmin(r.Context(), id)
		if err != nil {
			b.log.Error(err, "Failed to load current admin")
		} else {
			data["AdminEmail"] = admin.Email
		}
	}
	return data
}

func adminID(r *http.Request) string {
	return middleware.GetUserInfo(r.Context()).AdminID
}

// submit runs one form submission. On success it redirects to next with 303;
// on failure the form carries the translated message and false is returned so
// the caller can re-render.
func (b base) submit(w http.ResponseWriter, r *http.Request, form *content.FormState, write func() error, next string) bool {
	return content.Submit(form, write, func() {
		http.Redirect(w, r, next, http.StatusSeeOther)
	}, func(err error) string {
		return b.describe(r, err)
	})
}

// describe turns err into the one message a form shows. Errors that are not
// the user's doing are logged.
func (b base) describe(r *http.Request, err error) string {
	key := service.MessageKey(err)
	if key == "errors.generic" {
		b.log.With(map[string]interface{}{"path": r.URL.Path}).Error(err, "Form submission failed")
	}
	return b.view.T(r, key)
}

// remove deletes the row named by the id URL parameter and returns to next.
// A failed delete is reported through the flash message.
func (b base) remove(w http.ResponseWriter, r *http.Request, del func(id int64) error, next string) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	if err := del(id); err != nil {
		b.log.With(map[string]interface{}{"id": id, "path": r.URL.Path}).Error(err, "Delete failed")
		b.sm.Put(r.Context(), session.FlashKey, b.view.T(r, "admin.delete_failed"))
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
	return nil
}

func parseID(r *http.Request) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NotFound(errors.New("invalid id"))
	}
	return id, nil
}

// lookupError converts a failed single-row read into a page error.
func lookupError(err error) *middleware.AppError {
	if errors.Is(err, data.ErrNotFound) {
		return middleware.NotFound(err)
	}
	return middleware.Internal(err)
}

// formPage renders a form page, with 422 after a failed submission.
func (b base) formPage(w http.ResponseWriter, r *http.Request, name string, form content.FormState, data map[string]interface{}) *middleware.AppError {
	data["Form"] = form
	status := http.StatusOK
	if form.Status == content.Failed {
		status = http.StatusUnprocessableEntity
	}
	return b.renderStatus(w, r, status, name, data)
}
