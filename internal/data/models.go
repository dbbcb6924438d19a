package data

import (
	"html/template"
	"time"
)

// Audit holds the columns every content table shares.
type Audit struct {
	ID        int64      `db:"id" json:"id"`
	AdminID   string     `db:"admin_id" json:"admin_id"`
	UpdatedBy *string    `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Touch records an edit by adminID at the given time.
func (a *Audit) Touch(adminID string, at time.Time) {
	a.UpdatedBy = &adminID
	a.UpdatedAt = &at
}

// News is a news article shown on the public site.
type News struct {
	Audit
	Title        string  `db:"title" json:"title"`
	Body         string  `db:"body" json:"body"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`

	// HTMLBody is the rendered body; it is only set on public reads.
	HTMLBody template.HTML `db:"-" json:"html_body,omitempty"`
}

// Event is a dated college event.
type Event struct {
	Audit
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
	Location    *string   `db:"location" json:"location,omitempty"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`

	HTMLDescription template.HTML `db:"-" json:"html_description,omitempty"`
}

// Book is an entry in the library catalog.
type Book struct {
	Audit
	Title       string  `db:"title" json:"title"`
	Author      string  `db:"author" json:"author"`
	ISBN        *string `db:"isbn" json:"isbn,omitempty"`
	Description *string `db:"description" json:"description,omitempty"`
	CoverURL    *string `db:"cover_url" json:"cover_url,omitempty"`
	Available   bool    `db:"available" json:"available"`
}

// Staff is a member of the teaching staff directory.
type Staff struct {
	Audit
	Name       string  `db:"name" json:"name"`
	Position   string  `db:"position" json:"position"`
	Department string  `db:"department" json:"department"`
	Email      *string `db:"email" json:"email,omitempty"`
	Phone      *string `db:"phone" json:"phone,omitempty"`
	ImageURL   *string `db:"image_url" json:"image_url,omitempty"`
	Bio        *string `db:"bio" json:"bio,omitempty"`
}

// Admin is an account allowed into the admin console.
type Admin struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// LoginLog records one successful admin sign-in.
type LoginLog struct {
	ID      int64     `db:"id"`
	AdminID string    `db:"admin_id"`
	Email   string    `db:"email"`
	Date    time.Time `db:"date"`
}

// NullString returns nil for an empty string so optional columns store NULL.
func NullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
