package handler

import (
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/view"
	"net/http"
)

// recentLogins is how many sign-ins the dashboard lists.
const recentLogins = 10

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	base
	site service.SiteServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(site service.SiteServicer, accounts service.AccountServicer, sm session.Manager, v *view.View, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		base: base{view: v, log: log, sm: sm, accounts: accounts},
		site: site,
	}
}

func (h *AdminHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := h.adminData(r)

	counts, err := h.site.Counts(r.Context())
	if err != nil {
		h.log.Error(err, "Failed to count rows")
	}
	data["Counts"] = counts

	logins, err := h.accounts.RecentLogins(r.Context(), recentLogins)
	if err != nil {
		h.log.Error(err, "Failed to load recent logins")
	}
	data["Logins"] = logins

	return h.render(w, r, "admin_home.html", data)
}

// fallbackHandler sends unknown admin paths to the dashboard.
func (h *AdminHandler) fallbackHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/home", http.StatusFound)
}
