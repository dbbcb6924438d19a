package handler

import (
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/session"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the page handlers the router dispatches to.
type Handlers struct {
	Site    *SiteHandler
	Admin   *AdminHandler
	Auth    *AuthHandler
	News    *NewsHandler
	Events  *EventHandler
	Library *LibraryHandler
	Staff   *StaffHandler
	Seo     *SeoHandler
}

// Middlewares groups the middleware the router installs.
type Middlewares struct {
	Session  session.Manager
	Language func(http.Handler) http.Handler
	Authz    func(http.Handler) http.Handler
	CSRF     func(http.Handler) http.Handler
	Error    func(middleware.AppHandler) http.Handler
	Log      logger.Logger
}

// Assets are the file trees served as-is. UploadsDir is empty unless images
// are stored on local disk.
type Assets struct {
	Static     fs.FS
	UploadsDir string
}

// NewRouter creates and configures a new chi router.
func NewRouter(h Handlers, mw Middlewares, assets Assets) *chi.Mux {
	r := chi.NewRouter()
	e := mw.Error

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(mw.Log))
	r.Use(chimw.Recoverer)

	r.Get("/robots.txt", h.Seo.robotsHandler)
	r.Get("/sitemap.xml", h.Seo.sitemapHandler)
	if assets.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(assets.Static)))
	}
	if assets.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(assets.UploadsDir)})))
	}

	r.Group(func(r chi.Router) {
		r.Use(mw.Session.LoadAndSave)
		r.Use(mw.Language)

		// Public routes
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/home", http.StatusFound)
		})
		r.Method(http.MethodGet, "/home", e(h.Site.homeHandler))
		r.Method(http.MethodGet, "/news", e(h.Site.newsHandler))
		r.Method(http.MethodGet, "/events", e(h.Site.eventsHandler))
		r.Method(http.MethodGet, "/library", e(h.Site.libraryHandler))
		r.Method(http.MethodGet, "/staff", e(h.Site.staffHandler))

		// Admin console, gated by Casbin
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.Authz)
			r.Use(mw.CSRF)
			r.NotFound(h.Admin.fallbackHandler)

			r.Get("/", h.Admin.fallbackHandler)
			r.Method(http.MethodGet, "/home", e(h.Admin.homeHandler))

			r.Method(http.MethodGet, "/auth", e(h.Auth.formHandler))
			r.Method(http.MethodPost, "/auth", e(h.Auth.signInHandler))
			r.Method(http.MethodPost, "/auth/signup", e(h.Auth.signUpHandler))
			r.Get("/auth/oidc/login", h.Auth.handleLogin)
			r.Get("/auth/oidc/callback", h.Auth.handleCallback)
			r.Post("/logout", h.Auth.logoutHandler)

			r.Route("/news", func(r chi.Router) {
				r.Method(http.MethodGet, "/", e(h.News.listHandler))
				r.Method(http.MethodPost, "/", e(h.News.createHandler))
				r.Method(http.MethodGet, "/new", e(h.News.newHandler))
				r.Method(http.MethodGet, "/{id}/edit", e(h.News.editHandler))
				r.Method(http.MethodPost, "/{id}", e(h.News.updateHandler))
				r.Method(http.MethodPost, "/{id}/delete", e(h.News.deleteHandler))
			})
			r.Route("/events", func(r chi.Router) {
				r.Method(http.MethodGet, "/", e(h.Events.listHandler))
				r.Method(http.MethodPost, "/", e(h.Events.createHandler))
				r.Method(http.MethodGet, "/new", e(h.Events.newHandler))
				r.Method(http.MethodGet, "/{id}/edit", e(h.Events.editHandler))
				r.Method(http.MethodPost, "/{id}", e(h.Events.updateHandler))
				r.Method(http.MethodPost, "/{id}/delete", e(h.Events.deleteHandler))
			})
			r.Route("/library", func(r chi.Router) {
				r.Method(http.MethodGet, "/", e(h.Library.listHandler))
				r.Method(http.MethodPost, "/", e(h.Library.createHandler))
				r.Method(http.MethodGet, "/new", e(h.Library.newHandler))
				r.Method(http.MethodGet, "/{id}/edit", e(h.Library.editHandler))
				r.Method(http.MethodPost, "/{id}", e(h.Library.updateHandler))
				r.Method(http.MethodPost, "/{id}/delete", e(h.Library.deleteHandler))
			})
			r.Route("/staff", func(r chi.Router) {
				r.Method(http.MethodGet, "/", e(h.Staff.listHandler))
				r.Method(http.MethodPost, "/", e(h.Staff.createHandler))
				r.Method(http.MethodGet, "/new", e(h.Staff.newHandler))
				r.Method(http.MethodGet, "/{id}/edit", e(h.Staff.editHandler))
				r.Method(http.MethodPost, "/{id}", e(h.Staff.updateHandler))
				r.Method(http.MethodPost, "/{id}/delete", e(h.Staff.deleteHandler))
			})
		})

		// Unknown public paths show the home page.
		r.NotFound(e(h.Site.homeHandler).ServeHTTP)
	})

	return r
}

// filesOnly serves regular files and reports directories as missing, so the
// uploads tree cannot be listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
