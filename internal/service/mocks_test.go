//go:build unit

package service

import (
	"college-site/internal/data"
	"college-site/internal/storage"
	"context"
	"io"
	"sort"
	"strings"
	"time"
)

// mockNewsRepository is an in-memory NewsRepository.
type mockNewsRepository struct {
	items       map[int64]*data.News
	nextID      int64
	errToReturn error
	listCalls   int
	createCalls int
	updateCalls int
}

var _ NewsRepository = (*mockNewsRepository)(nil)

func newMockNewsRepository() *mockNewsRepository {
	return &mockNewsRepository{items: map[int64]*data.News{}, nextID: 1}
}

func (m *mockNewsRepository) List(ctx context.Context, order data.Order) ([]*data.News, error) {
	m.listCalls++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	var out []*data.News
	for _, n := range m.items {
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockNewsRepository) Recent(ctx context.Context, limit int) ([]*data.News, error) {
	items, err := m.List(ctx, data.NewestFirst)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, err
}

func (m *mockNewsRepository) GetByID(ctx context.Context, id int64) (*data.News, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	n, ok := m.items[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *n
	return &c, nil
}

func (m *mockNewsRepository) Create(ctx context.Context, n *data.News) error {
	m.createCalls++
	if m.errToReturn != nil {
		return m.errToReturn
	}
	n.ID = m.nextID
	m.nextID++
	c := *n
	m.items[n.ID] = &c
	return nil
}

func (m *mockNewsRepository) Update(ctx context.Context, n *data.News) error {
	m.updateCalls++
	if m.errToReturn != nil {
		return m.errToReturn
	}
	if _, ok := m.items[n.ID]; !ok {
		return data.ErrNotFound
	}
	c := *n
	m.items[n.ID] = &c
	return nil
}

func (m *mockNewsRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return data.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockNewsRepository) Count(ctx context.Context) (int, error) {
	return len(m.items), m.errToReturn
}

// mockBucket records uploads instead of storing them.
type mockBucket struct {
	keys        []string
	types       []string
	errToReturn error
}

var _ storage.Bucket = (*mockBucket)(nil)

func (b *mockBucket) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	if b.errToReturn != nil {
		return "", b.errToReturn
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	b.keys = append(b.keys, key)
	b.types = append(b.types, contentType)
	return b.PublicURL(key), nil
}

func (b *mockBucket) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// mockEventRepository is an in-memory EventRepository.
type mockEventRepository struct {
	items  map[int64]*data.Event
	nextID int64
}

var _ EventRepository = (*mockEventRepository)(nil)

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{items: map[int64]*data.Event{}, nextID: 1}
}

func (m *mockEventRepository) List(ctx context.Context, order data.Order) ([]*data.Event, error) {
	var out []*data.Event
	for _, e := range m.items {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == data.DateDescending {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *mockEventRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]*data.Event, error) {
	all, _ := m.List(ctx, data.DateAscending)
	out := []*data.Event{}
	for _, e := range all {
		if !e.Date.Before(from) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id int64) (*data.Event, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (m *mockEventRepository) Create(ctx context.Context, e *data.Event) error {
	e.ID = m.nextID
	m.nextID++
	c := *e
	m.items[e.ID] = &c
	return nil
}

func (m *mockEventRepository) Update(ctx context.Context, e *data.Event) error {
	if _, ok := m.items[e.ID]; !ok {
		return data.ErrNotFound
	}
	c := *e
	m.items[e.ID] = &c
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockEventRepository) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

// mockBookRepository is an in-memory BookRepository.
type mockBookRepository struct {
	items       map[int64]*data.Book
	nextID      int64
	searchCalls int
	listCalls   int
}

var _ BookRepository = (*mockBookRepository)(nil)

func newMockBookRepository() *mockBookRepository {
	return &mockBookRepository{items: map[int64]*data.Book{}, nextID: 1}
}

func (m *mockBookRepository) List(ctx context.Context, order data.Order) ([]*data.Book, error) {
	m.listCalls++
	var out []*data.Book
	for _, b := range m.items {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockBookRepository) Search(ctx context.Context, q string) ([]*data.Book, error) {
	m.searchCalls++
	all, _ := m.List(ctx, data.TitleAscending)
	var out []*data.Book
	for _, b := range all {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(q)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookRepository) GetByID(ctx context.Context, id int64) (*data.Book, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (m *mockBookRepository) Create(ctx context.Context, b *data.Book) error {
	b.ID = m.nextID
	m.nextID++
	c := *b
	m.items[b.ID] = &c
	return nil
}

func (m *mockBookRepository) Update(ctx context.Context, b *data.Book) error {
	if _, ok := m.items[b.ID]; !ok {
		return data.ErrNotFound
	}
	c := *b
	m.items[b.ID] = &c
	return nil
}

func (m *mockBookRepository) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockBookRepository) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

// mockStaffRepository is an in-memory StaffRepository.
type mockStaffRepository struct {
	items  map[int64]*data.Staff
	nextID int64
}

var _ StaffRepository = (*mockStaffRepository)(nil)

func newMockStaffRepository() *mockStaffRepository {
	return &mockStaffRepository{items: map[int64]*data.Staff{}, nextID: 1}
}

func (m *mockStaffRepository) List(ctx context.Context, order data.Order) ([]*data.Staff, error) {
	var out []*data.Staff
	for _, s := range m.items {
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStaffRepository) ListByDepartment(ctx context.Context, department string) ([]*data.Staff, error) {
	all, _ := m.List(ctx, data.NameAscending)
	var out []*data.Staff
	for _, s := range all {
		if s.Department == department {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStaffRepository) Departments(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, s := range m.items {
		if !seen[s.Department] {
			seen[s.Department] = true
			out = append(out, s.Department)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockStaffRepository) GetByID(ctx context.Context, id int64) (*data.Staff, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (m *mockStaffRepository) Create(ctx context.Context, s *data.Staff) error {
	s.ID = m.nextID
	m.nextID++
	c := *s
	m.items[s.ID] = &c
	return nil
}

func (m *mockStaffRepository) Update(ctx context.Context, s *data.Staff) error {
	if _, ok := m.items[s.ID]; !ok {
		return data.ErrNotFound
	}
	c := *s
	m.items[s.ID] = &c
	return nil
}

func (m *mockStaffRepository) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockStaffRepository) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

// mockAccountRepository is an in-memory AccountRepository.
type mockAccountRepository struct {
	admins map[string]*data.Admin
	logs   []*data.LoginLog
}

var _ AccountRepository = (*mockAccountRepository)(nil)

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{admins: map[string]*data.Admin{}}
}

func (m *mockAccountRepository) Create(ctx context.Context, a *data.Admin) error {
	c := *a
	m.admins[a.ID] = &c
	return nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*data.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*data.Admin, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (m *mockAccountRepository) LogLogin(ctx context.Context, l *data.LoginLog) error {
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockAccountRepository) RecentLogins(ctx context.Context, limit int) ([]*data.LoginLog, error) {
	out := make([]*data.LoginLog, 0, limit)
	for i := len(m.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.logs[i])
	}
	return out, nil
}
