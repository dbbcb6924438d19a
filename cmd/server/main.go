package main

import (
	"college-site/internal/auth"
	"college-site/internal/cache"
	"college-site/internal/config"
	"college-site/internal/data"
	"college-site/internal/handler"
	"college-site/internal/i18n"
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/storage"
	"college-site/internal/view"
	"college-site/web"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Pre-flight Checks ---
	if len(cfg.Session.SecretKey) < 32 {
		log.Fatal(errors.New("session secret key not set"), "Please set COLLEGE_SESSION_SECRET_KEY to at least 32 characters.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(db, cfg.DB.Driver); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	// --- Session Management Setup ---
	sessionManager, err := session.New(cfg.Session, cfg.Server.TLS.Enabled, cfg.DB.Driver, db.DB)
	if err != nil {
		log.Fatal(err, "Failed to initialize sessions")
	}

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	enforcer, err := auth.NewEnforcer(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)

	var authenticator *auth.Authenticator
	if cfg.OIDC.Enabled() {
		authenticator, err = auth.NewAuthenticator(context.Background(), cfg.OIDC)
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
		log.Info("Single sign-on enabled.")
	}

	// --- View Template Initialization ---
	catalog, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		log.Fatal(err, "Failed to load translations")
	}
	viewService, err := view.New(web.TemplateFS, catalog)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	pageCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer pageCache.Close()

	// --- Object Storage ---
	bucket, err := storage.New(cfg.Storage, log)
	if err != nil {
		log.Fatal(err, "Failed to initialize storage")
	}
	var uploadsDir string
	if local, ok := bucket.(*storage.LocalBucket); ok {
		uploadsDir = local.Dir()
	}

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	newsService := service.NewNewsService(data.NewSQLNewsRepository(db), bucket, pageCache, log)
	eventService := service.NewEventService(data.NewSQLEventRepository(db), pageCache, log, time.Local)
	bookService := service.NewBookService(data.NewSQLBookRepository(db), pageCache, log)
	staffService := service.NewStaffService(data.NewSQLStaffRepository(db), pageCache, log)
	accountService := service.NewAccountService(data.NewAccountRepository(db), log)
	siteService := service.NewSiteService(newsService, eventService, bookService, staffService, pageCache, log)

	handlers := handler.Handlers{
		Site:    handler.NewSiteHandler(siteService, newsService, eventService, bookService, staffService, viewService, log),
		Admin:   handler.NewAdminHandler(siteService, accountService, sessionManager, viewService, log),
		Auth:    handler.NewAuthHandler(accountService, authenticator, sessionManager, viewService, log),
		News:    handler.NewNewsHandler(newsService, accountService, sessionManager, viewService, log),
		Events:  handler.NewEventHandler(eventService, accountService, sessionManager, viewService, log),
		Library: handler.NewLibraryHandler(bookService, accountService, sessionManager, viewService, log),
		Staff:   handler.NewStaffHandler(staffService, accountService, sessionManager, viewService, log),
		Seo:     handler.NewSeoHandler(cfg.Server.BaseURL, newsService),
	}

	var trustedOrigins []string
	if u, err := url.Parse(cfg.Server.BaseURL); err == nil && u.Host != "" {
		trustedOrigins = append(trustedOrigins, u.Host)
	}
	middlewares := handler.Middlewares{
		Session:  sessionManager,
		Language: middleware.Language(catalog),
		Authz:    middleware.Authorizer(enforcer, sessionManager, log),
		CSRF:     middleware.CSRF([]byte(cfg.Session.SecretKey), trustedOrigins, log),
		Error:    middleware.Error(log, viewService),
		Log:      log,
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatal(err, "Failed to open static assets")
	}

	// --- Router Setup ---
	router := handler.NewRouter(handlers, middlewares, handler.Assets{Static: static, UploadsDir: uploadsDir})

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
