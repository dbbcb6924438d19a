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

const eventsPath = "/admin/events"

// EventHandler serves the events section of the admin console.
type EventHandler struct {
	base
	events service.EventServicer
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events service.EventServicer, accounts service.AccountServicer, sm session.Manager, v *view.View, log logger.Logger) *EventHandler {
	return &EventHandler{
		base:   base{view: v, log: log, sm: sm, accounts: accounts},
		events: events,
	}
}

func (h *EventHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := h.adminData(r)
	data["Events"] = content.Load(r.Context(), h.log, "admin events", h.events.List)
	return h.render(w, r, "admin_events.html", data)
}

func (h *EventHandler) newHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.form(w, r, nil, service.EventInput{}, content.FormState{})
}

func (h *EventHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	e, err := h.events.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}
	return h.form(w, r, e, eventInput(e), content.FormState{})
}

func (h *EventHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var form content.FormState
	in := readEventForm(r)
	if h.submit(w, r, &form, func() error {
		_, err := h.events.Create(r.Context(), adminID(r), in)
		return err
	}, eventsPath) {
		return nil
	}
	return h.form(w, r, nil, in, form)
}

func (h *EventHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	e, err := h.events.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}

	var form content.FormState
	in := readEventForm(r)
	if h.submit(w, r, &form, func() error {
		_, err := h.events.Update(r.Context(), id, adminID(r), in)
		return err
	}, eventsPath) {
		return nil
	}
	return h.form(w, r, e, in, form)
}

func (h *EventHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.remove(w, r, func(id int64) error {
		return h.events.Delete(r.Context(), id)
	}, eventsPath)
}

func (h *EventHandler) form(w http.ResponseWriter, r *http.Request, item *data.Event, in service.EventInput, form content.FormState) *middleware.AppError {
	data := h.adminData(r)
	data["Item"] = item
	data["Input"] = in
	return h.formPage(w, r, "admin_event_form.html", form, data)
}

func readEventForm(r *http.Request) service.EventInput {
	return service.EventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Location:    r.FormValue("location"),
		ImageURL:    r.FormValue("image_url"),
	}
}

// eventInput seeds the edit form from a stored event, in local time.
func eventInput(e *data.Event) service.EventInput {
	local := e.Date.Local()
	in := service.EventInput{
		Title:       e.Title,
		Description: e.Description,
		Date:        local.Format("2006-01-02"),
		Time:        local.Format("15:04"),
	}
	if e.Location != nil {
		in.Location = *e.Location
	}
	if e.ImageURL != nil {
		in.ImageURL = *e.ImageURL
	}
	return in
}
