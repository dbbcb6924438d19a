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

const staffPath = "/admin/staff"

// StaffHandler serves the staff section of the admin console.
type StaffHandler struct {
	base
	staff service.StaffServicer
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staff service.StaffServicer, accounts service.AccountServicer, sm session.Manager, v *view.View, log logger.Logger) *StaffHandler {
	return &StaffHandler{
		base:  base{view: v, log: log, sm: sm, accounts: accounts},
		staff: staff,
	}
}

func (h *StaffHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := h.adminData(r)
	data["Staff"] = content.Load(r.Context(), h.log, "admin staff", h.staff.List)
	return h.render(w, r, "admin_staff.html", data)
}

func (h *StaffHandler) newHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.form(w, r, nil, service.StaffInput{}, content.FormState{})
}

func (h *StaffHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	m, err := h.staff.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}
	in := service.StaffInput{
		Name:       m.Name,
		Position:   m.Position,
		Department: m.Department,
		Email:      deref(m.Email),
		Phone:      deref(m.Phone),
		ImageURL:   deref(m.ImageURL),
		Bio:        deref(m.Bio),
	}
	return h.form(w, r, m, in, content.FormState{})
}

func (h *StaffHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var form content.FormState
	in := readStaffForm(r)
	if h.submit(w, r, &form, func() error {
		_, err := h.staff.Create(r.Context(), adminID(r), in)
		return err
	}, staffPath) {
		return nil
	}
	return h.form(w, r, nil, in, form)
}

func (h *StaffHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	m, err := h.staff.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}

	var form content.FormState
	in := readStaffForm(r)
	if h.submit(w, r, &form, func() error {
		_, err := h.staff.Update(r.Context(), id, adminID(r), in)
		return err
	}, staffPath) {
		return nil
	}
	return h.form(w, r, m, in, form)
}

func (h *StaffHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.remove(w, r, func(id int64) error {
		return h.staff.Delete(r.Context(), id)
	}, staffPath)
}

func (h *StaffHandler) form(w http.ResponseWriter, r *http.Request, item *data.Staff, in service.StaffInput, form content.FormState) *middleware.AppError {
	data := h.adminData(r)
	data["Item"] = item
	data["Input"] = in
	return h.formPage(w, r, "admin_staff_form.html", form, data)
}

func readStaffForm(r *http.Request) service.StaffInput {
	return service.StaffInput{
		Name:       r.FormValue("name"),
		Position:   r.FormValue("position"),
		Department: r.FormValue("department"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		ImageURL:   r.FormValue("image_url"),
		Bio:        r.FormValue("bio"),
	}
}
