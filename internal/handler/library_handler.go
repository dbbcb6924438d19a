package handler

import (
	"college-site/internal/content"
	"college-site/internal/data"
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/view"
	"net/http"
)

const libraryPath = "/admin/library"

// LibraryHandler serves the library section of the admin console.
type LibraryHandler struct {
	base
	books service.BookServicer
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(books service.BookServicer, accounts service.AccountServicer, sm session.Manager, v *view.View, log logger.Logger) *LibraryHandler {
	return &LibraryHandler{
		base:  base{view: v, log: log, sm: sm, accounts: accounts},
		books: books,
	}
}

func (h *LibraryHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := h.adminData(r)
	data["Books"] = content.Load(r.Context(), h.log, "admin books", h.books.List)
	return h.render(w, r, "admin_library.html", data)
}

// newHandler renders an empty form; a new book starts out available.
func (h *LibraryHandler) newHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.form(w, r, nil, service.BookInput{Available: true}, content.FormState{})
}

func (h *LibraryHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	b, err := h.books.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}
	in := service.BookInput{
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        deref(b.ISBN),
		Description: deref(b.Description),
		CoverURL:    deref(b.CoverURL),
		Available:   b.Available,
	}
	return h.form(w, r, b, in, content.FormState{})
}

func (h *LibraryHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var form content.FormState
	in := readBookForm(r)
	if h.submit(w, r, &form, func() error {
		_, err := h.books.Create(r.Context(), adminID(r), in)
		return err
	}, libraryPath) {
		return nil
	}
	return h.form(w, r, nil, in, form)
}

func (h *LibraryHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	b, err := h.books.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}

	var form content.FormState
	in := readBookForm(r)
	if h.submit(w, r, &form, func() error {
		_, err := h.books.Update(r.Context(), id, adminID(r), in)
		return err
	}, libraryPath) {
		return nil
	}
	return h.form(w, r, b, in, form)
}

func (h *LibraryHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.remove(w, r, func(id int64) error {
		return h.books.Delete(r.Context(), id)
	}, libraryPath)
}

func (h *LibraryHandler) form(w http.ResponseWriter, r *http.Request, item *data.Book, in service.BookInput, form content.FormState) *middleware.AppError {
	data := h.adminData(r)
	data["Item"] = item
	data["Input"] = in
	return h.formPage(w, r, "admin_book_form.html", form, data)
}

// readBookForm reads the book form. An unchecked checkbox is simply absent.
func readBookForm(r *http.Request) service.BookInput {
	return service.BookInput{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		ISBN:        r.FormValue("isbn"),
		Description: r.FormValue("description"),
		CoverURL:    r.FormValue("cover_url"),
		Available:   r.FormValue("available") != "",
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
