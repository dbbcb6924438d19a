//go:build integration

package data

import (
	"college-site/internal/config"
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminID = "6f1c0d0e-3a51-4c55-9d0c-000000000001"

// setupTestDB creates a migrated in-memory SQLite database with one admin account.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := NewDB(config.DBConfig{Driver: "sqlite3", DSN: "file::memory:?_foreign_keys=on"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, ApplyMigrations(db, "sqlite3"))

	admins := NewAccountRepository(db)
	require.NoError(t, admins.Create(context.Background(), &Admin{
		ID:           testAdminID,
		Email:        "admin@college.edu",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}))
	return db
}

func audit(at time.Time) Audit {
	return Audit{AdminID: testAdminID, CreatedAt: at.UTC()}
}

func TestApplyMigrations_IsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, ApplyMigrations(db, "sqlite3"))
}

func TestApplyMigrations_UnknownDriver(t *testing.T) {
	db := setupTestDB(t)
	assert.Error(t, ApplyMigrations(db, "postgres"))
}

func TestNewsRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLNewsRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	older := &News{Audit: audit(base), Title: "Enrollment opens", Body: "Apply now."}
	newer := &News{Audit: audit(base.Add(time.Hour)), Title: "Library hours", Body: "Open late.", ThumbnailURL: NullString("https://cdn/x.png")}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	assert.NotZero(t, older.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	items, err := repo.List(ctx, NewestFirst)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Library hours", items[0].Title)
	require.NotNil(t, items[0].ThumbnailURL)
	assert.Equal(t, "https://cdn/x.png", *items[0].ThumbnailURL)
	assert.Nil(t, items[1].ThumbnailURL)

	recent, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, newer.ID, recent[0].ID)

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	got.Title = "Enrollment closes"
	got.Touch(testAdminID, base.Add(2*time.Hour))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Enrollment closes", got.Title)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(base.Add(2*time.Hour)))
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, testAdminID, *got.UpdatedBy)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.Delete(ctx, older.ID))
	_, err = repo.GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, older.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, older), ErrNotFound)
}

func TestNewsRepository_ListEmpty(t *testing.T) {
	repo := NewSQLNewsRepository(setupTestDB(t))
	items, err := repo.List(context.Background(), NewestFirst)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEventRepository_OrderingAndUpcoming(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLEventRepository(setupTestDB(t))
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{-48 * time.Hour, 24 * time.Hour, 72 * time.Hour} {
		e := &Event{
			Audit:       audit(now.Add(time.Duration(i) * time.Minute)),
			Title:       []string{"Past", "Soon", "Later"}[i],
			Description: "d",
			Date:        now.Add(offset),
		}
		require.NoError(t, repo.Create(ctx, e))
	}

	asc, err := repo.List(ctx, DateAscending)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"Past", "Soon", "Later"}, []string{asc[0].Title, asc[1].Title, asc[2].Title})

	desc, err := repo.List(ctx, DateDescending)
	require.NoError(t, err)
	assert.Equal(t, "Later", desc[0].Title)

	upcoming, err := repo.Upcoming(ctx, now, 3)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Soon", upcoming[0].Title)
}

func TestBookRepository_SearchAndAvailability(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLBookRepository(setupTestDB(t))
	now := time.Now().UTC()

	books := []*Book{
		{Audit: audit(now), Title: "Organic Chemistry", Author: "Clayden", ISBN: NullString("9780199270293"), Available: true},
		{Audit: audit(now), Title: "Calculus", Author: "Spivak", Available: true},
		{Audit: audit(now), Title: "Algorithms", Author: "Sedgewick", ISBN: NullString("9780321573513"), Available: true},
	}
	for _, b := range books {
		require.NoError(t, repo.Create(ctx, b))
	}

	all, err := repo.List(ctx, TitleAscending)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", all[0].Title)

	byAuthor, err := repo.Search(ctx, "spiv")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Calculus", byAuthor[0].Title)

	byISBN, err := repo.Search(ctx, "0321")
	require.NoError(t, err)
	require.Len(t, byISBN, 1)
	assert.Equal(t, "Algorithms", byISBN[0].Title)

	b := books[1]
	b.Available = false
	b.Touch(testAdminID, now.Add(time.Minute))
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	require.NotNil(t, got.UpdatedAt)
}

func TestStaffRepository_Departments(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLStaffRepository(setupTestDB(t))
	now := time.Now().UTC()

	for _, s := range []*Staff{
		{Audit: audit(now), Name: "Sara", Position: "Lecturer", Department: "Physics"},
		{Audit: audit(now), Name: "Ahmed", Position: "Professor", Department: "Physics"},
		{Audit: audit(now), Name: "Laila", Position: "Dean", Department: "Arts", Email: NullString("laila@college.edu")},
	} {
		require.NoError(t, repo.Create(ctx, s))
	}

	departments, err := repo.Departments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arts", "Physics"}, departments)

	physics, err := repo.ListByDepartment(ctx, "Physics")
	require.NoError(t, err)
	require.Len(t, physics, 2)
	assert.Equal(t, "Ahmed", physics[0].Name)

	byName, err := repo.List(ctx, NameAscending)
	require.NoError(t, err)
	assert.Equal(t, "Ahmed", byName[0].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(setupTestDB(t))

	admin, err := repo.GetByEmail(ctx, "admin@college.edu")
	require.NoError(t, err)
	assert.Equal(t, testAdminID, admin.ID)

	_, err = repo.GetByEmail(ctx, "nobody@college.edu")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, testAdminID)
	require.NoError(t, err)

	// The email column is unique.
	err = repo.Create(ctx, &Admin{ID: "other", Email: "admin@college.edu", PasswordHash: "x", CreatedAt: time.Now()})
	assert.Error(t, err)

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogLogin(ctx, &LoginLog{AdminID: testAdminID, Email: admin.Email, Date: base.Add(time.Duration(i) * time.Hour)}))
	}
	logs, err := repo.RecentLogins(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].Date.After(logs[1].Date))
}
