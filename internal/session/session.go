package session

import (
	"college-site/internal/config"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	// AdminIDKey holds the id of the signed-in admin.
	AdminIDKey = "admin_id"
	// FlashKey holds a one-shot message shown on the next page.
	FlashKey = "flash"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
	RenewToken(ctx context.Context) error
}

var _ Manager = (*scs.SessionManager)(nil)

// New creates a session manager that keeps sessions in the application
// database selected by driver.
func New(cfg config.SessionConfig, secure bool, driver string, db *sql.DB) (*scs.SessionManager, error) {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db)
	case "sqlite3":
		sm.Store = sqlite3store.New(db)
	default:
		return nil, fmt.Errorf("unsupported session store for driver %q", driver)
	}

	lifetime := cfg.LifetimeHours
	if lifetime <= 0 {
		lifetime = 24
	}
	sm.Lifetime = time.Duration(lifetime) * time.Hour
	sm.Cookie.Name = "college_session"
	sm.Cookie.Persist = true
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm, nil
}
