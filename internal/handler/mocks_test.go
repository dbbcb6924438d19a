//go:build unit

package handler

import (
	"college-site/internal/data"
	"college-site/internal/i18n"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/view"
	"college-site/web"
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const testAdminID = "admin-1"

func newTestView(t *testing.T) (*view.View, *i18n.Catalog) {
	t.Helper()
	catalog, err := i18n.New("ar")
	require.NoError(t, err)
	v, err := view.New(web.TemplateFS, catalog)
	require.NoError(t, err)
	return v, catalog
}

// asAdmin marks r as coming from the signed-in test admin.
func asAdmin(r *http.Request) *http.Request {
	info := &middleware.UserInfo{Subject: "admin", AdminID: testAdminID}
	return r.WithContext(middleware.SetUserInfo(r.Context(), info))
}

// withID sets the chi id URL parameter on r.
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// mockSessionManager is a mock implementation of the session.Manager interface.
type mockSessionManager struct {
	destroyCalled bool
	renewed       bool
	values        map[string]interface{}
}

// Ensure mockSessionManager implements the session.Manager interface.
var _ session.Manager = (*mockSessionManager)(nil)

func newMockSession() *mockSessionManager {
	return &mockSessionManager{values: map[string]interface{}{}}
}

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler {
	return next
}
func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.values[key] = val
}
func (m *mockSessionManager) GetString(ctx context.Context, key string) string {
	s, _ := m.values[key].(string)
	return s
}
func (m *mockSessionManager) PopString(ctx context.Context, key string) string {
	s := m.GetString(ctx, key)
	delete(m.values, key)
	return s
}
func (m *mockSessionManager) Remove(ctx context.Context, key string) {
	delete(m.values, key)
}
func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.destroyCalled = true
	m.values = map[string]interface{}{}
	return nil
}
func (m *mockSessionManager) RenewToken(ctx context.Context) error {
	m.renewed = true
	return nil
}

type stubAccounts struct {
	admin  *data.Admin
	err    error
	logins []*data.LoginLog
}

var _ service.AccountServicer = (*stubAccounts)(nil)

func (s *stubAccounts) SignUp(ctx context.Context, email, password string) (*data.Admin, error) {
	return s.admin, s.err
}
func (s *stubAccounts) SignIn(ctx context.Context, email, password string) (*data.Admin, error) {
	return s.admin, s.err
}
func (s *stubAccounts) SignInExternal(ctx context.Context, email string) (*data.Admin, error) {
	return s.admin, s.err
}
func (s *stubAccounts) CurrentAdmin(ctx context.Context, id string) (*data.Admin, error) {
	return &data.Admin{ID: id, Email: "dean@college.example"}, nil
}
func (s *stubAccounts) RecentLogins(ctx context.Context, limit int) ([]*data.LoginLog, error) {
	return s.logins, nil
}

type stubNews struct {
	items     []*data.News
	err       error
	deleteErr error
	created   []service.NewsInput
	updated   map[int64]service.NewsInput
	adminIDs  []string
}

var _ service.NewsServicer = (*stubNews)(nil)

func (s *stubNews) List(ctx context.Context) ([]*data.News, error) {
	return s.items, s.err
}
func (s *stubNews) Published(ctx context.Context) ([]*data.News, error) {
	return s.items, s.err
}
func (s *stubNews) Get(ctx context.Context, id int64) (*data.News, error) {
	for _, n := range s.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, data.ErrNotFound
}
func (s *stubNews) Create(ctx context.Context, adminID string, in service.NewsInput) (*data.News, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, in)
	s.adminIDs = append(s.adminIDs, adminID)
	return &data.News{Title: in.Title}, nil
}
func (s *stubNews) Update(ctx context.Context, id int64, adminID string, in service.NewsInput) (*data.News, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.updated == nil {
		s.updated = map[int64]service.NewsInput{}
	}
	s.updated[id] = in
	return &data.News{Title: in.Title}, nil
}
func (s *stubNews) Delete(ctx context.Context, id int64) error {
	return s.deleteErr
}
func (s *stubNews) Count(ctx context.Context) (int, error) {
	return len(s.items), nil
}

type stubEvents struct {
	upcoming, past []*data.Event
	items          []*data.Event
	err            error
	created        []service.EventInput
}

var _ service.EventServicer = (*stubEvents)(nil)

func (s *stubEvents) List(ctx context.Context) ([]*data.Event, error) {
	return s.items, s.err
}
func (s *stubEvents) Split(ctx context.Context) ([]*data.Event, []*data.Event, error) {
	return s.upcoming, s.past, s.err
}
func (s *stubEvents) Get(ctx context.Context, id int64) (*data.Event, error) {
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, data.ErrNotFound
}
func (s *stubEvents) Create(ctx context.Context, adminID string, in service.EventInput) (*data.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, in)
	return &data.Event{Title: in.Title}, nil
}
func (s *stubEvents) Update(ctx context.Context, id int64, adminID string, in service.EventInput) (*data.Event, error) {
	return &data.Event{Title: in.Title}, s.err
}
func (s *stubEvents) Delete(ctx context.Context, id int64) error {
	return s.err
}
func (s *stubEvents) Count(ctx context.Context) (int, error) {
	return len(s.items), nil
}

type stubBooks struct {
	items   []*data.Book
	query   string
	created []service.BookInput
}

var _ service.BookServicer = (*stubBooks)(nil)

func (s *stubBooks) List(ctx context.Context) ([]*data.Book, error) {
	return s.items, nil
}
func (s *stubBooks) Catalog(ctx context.Context, q string) ([]*data.Book, error) {
	s.query = q
	return s.items, nil
}
func (s *stubBooks) Get(ctx context.Context, id int64) (*data.Book, error) {
	return nil, data.ErrNotFound
}
func (s *stubBooks) Create(ctx context.Context, adminID string, in service.BookInput) (*data.Book, error) {
	s.created = append(s.created, in)
	return &data.Book{Title: in.Title}, nil
}
func (s *stubBooks) Update(ctx context.Context, id int64, adminID string, in service.BookInput) (*data.Book, error) {
	return nil, data.ErrNotFound
}
func (s *stubBooks) Delete(ctx context.Context, id int64) error {
	return nil
}
func (s *stubBooks) Count(ctx context.Context) (int, error) {
	return len(s.items), nil
}

type stubStaff struct {
	items       []*data.Staff
	departments []string
	department  string
}

var _ service.StaffServicer = (*stubStaff)(nil)

func (s *stubStaff) List(ctx context.Context) ([]*data.Staff, error) {
	return s.items, nil
}
func (s *stubStaff) Directory(ctx context.Context, department string) ([]*data.Staff, error) {
	s.department = department
	return s.items, nil
}
func (s *stubStaff) Departments(ctx context.Context) ([]string, error) {
	return s.departments, nil
}
func (s *stubStaff) Get(ctx context.Context, id int64) (*data.Staff, error) {
	return nil, data.ErrNotFound
}
func (s *stubStaff) Create(ctx context.Context, adminID string, in service.StaffInput) (*data.Staff, error) {
	return &data.Staff{Name: in.Name}, nil
}
func (s *stubStaff) Update(ctx context.Context, id int64, adminID string, in service.StaffInput) (*data.Staff, error) {
	return nil, data.ErrNotFound
}
func (s *stubStaff) Delete(ctx context.Context, id int64) error {
	return nil
}
func (s *stubStaff) Count(ctx context.Context) (int, error) {
	return len(s.items), nil
}

type stubSite struct {
	home   *service.Home
	err    error
	counts service.Counts
}

var _ service.SiteServicer = (*stubSite)(nil)

func (s *stubSite) Home(ctx context.Context) (*service.Home, error) {
	return s.home, s.err
}
func (s *stubSite) Counts(ctx context.Context) (service.Counts, error) {
	return s.counts, nil
}
