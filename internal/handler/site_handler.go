package handler

import (
	"college-site/internal/content"
	"college-site/internal/data"
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/view"
	"context"
	"net/http"
	"strings"
)

// SiteHandler serves the public pages.
type SiteHandler struct {
	base
	site   service.SiteServicer
	news   service.NewsServicer
	events service.EventServicer
	books  service.BookServicer
	staff  service.StaffServicer
}

// NewSiteHandler creates a new SiteHandler with the given dependencies.
func NewSiteHandler(site service.SiteServicer, news service.NewsServicer, events service.EventServicer, books service.BookServicer, staff service.StaffServicer, v *view.View, log logger.Logger) *SiteHandler {
	return &SiteHandler{
		base:   base{view: v, log: log},
		site:   site,
		news:   news,
		events: events,
		books:  books,
		staff:  staff,
	}
}

// homeHandler renders the landing page. It also answers every unknown public path.
func (h *SiteHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	home, err := h.site.Home(r.Context())
	if err != nil {
		h.log.Error(err, "Failed to load home page")
		home = &service.Home{}
	}
	return h.render(w, r, "home.html", map[string]interface{}{
		"News":   content.ListState[*data.News]{Items: home.News},
		"Events": content.ListState[*data.Event]{Items: home.Events},
	})
}

func (h *SiteHandler) newsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.render(w, r, "news.html", map[string]interface{}{
		"News": content.Load(r.Context(), h.log, "news", h.news.Published),
	})
}

// eventsHandler renders upcoming and past events from a single fetch.
func (h *SiteHandler) eventsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var past []*data.Event
	upcoming := content.Load(r.Context(), h.log, "events", func(ctx context.Context) ([]*data.Event, error) {
		up, p, err := h.events.Split(ctx)
		past = p
		return up, err
	})
	if past == nil {
		past = []*data.Event{}
	}
	return h.render(w, r, "events.html", map[string]interface{}{
		"Upcoming": upcoming,
		"Past":     content.ListState[*data.Event]{Items: past, Failed: upcoming.Failed},
	})
}

func (h *SiteHandler) libraryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	books := content.Load(r.Context(), h.log, "books", func(ctx context.Context) ([]*data.Book, error) {
		return h.books.Catalog(ctx, q)
	})
	return h.render(w, r, "library.html", map[string]interface{}{
		"Books": books,
		"Query": q,
	})
}

func (h *SiteHandler) staffHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	department := strings.TrimSpace(r.URL.Query().Get("department"))
	members := content.Load(r.Context(), h.log, "staff", func(ctx context.Context) ([]*data.Staff, error) {
		return h.staff.Directory(ctx, department)
	})
	departments := content.Load(r.Context(), h.log, "departments", h.staff.Departments)
	return h.render(w, r, "staff.html", map[string]interface{}{
		"Staff":       members,
		"Departments": departments.Items,
		"Department":  department,
	})
}
