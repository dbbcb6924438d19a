package view

import (
	"bytes"
	"college-site/internal/i18n"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// View represents a collection of parsed HTML templates.
type View struct {
	templates map[string]*template.Template
	catalog   *i18n.Catalog
}

// New creates a new View by parsing all templates from the given filesystem.
// Every page is parsed together with all layouts and is looked up by its file name.
func New(templateFS fs.FS, catalog *i18n.Catalog) (*View, error) {
	v := &View{
		templates: make(map[string]*template.Template),
		catalog:   catalog,
	}

	layouts, err := fs.Glob(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	funcs := v.funcs()
	for _, page := range pages {
		files := append(append([]string{}, layouts...), page)
		name := filepath.Base(page)
		ts, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		v.templates[name] = ts
	}

	return v, nil
}

func (v *View) funcs() template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string, args ...any) string {
			return v.catalog.T(lang, key, args...)
		},
		"dir": i18n.Dir,
		"date": func(t time.Time) string {
			return t.Local().Format("2006-01-02")
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"clock": func(t time.Time) string {
			return t.Local().Format("15:04")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"excerpt": func(s string, n int) string {
			if utf8.RuneCountInString(s) <= n {
				return s
			}
			return string([]rune(s)[:n]) + "…"
		},
	}
}

// Lang returns the request language, or the default when none was resolved.
func (v *View) Lang(r *http.Request) string {
	if lang := i18n.LanguageFrom(r.Context()); lang != "" {
		return lang
	}
	return v.catalog.Default()
}

// T translates key into the request language.
func (v *View) T(r *http.Request, key string, args ...any) string {
	return v.catalog.T(v.Lang(r), key, args...)
}

// Render executes a specific template by name with a 200 status.
func (v *View) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) error {
	return v.RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus executes a specific template by name and writes it with status.
// The template is executed into a buffer first so a failure never leaves a
// half-written page.
func (v *View) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) error {
	ts, ok := v.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	lang := v.Lang(r)
	data["Lang"] = lang
	data["Dir"] = i18n.Dir(lang)
	data["Path"] = r.URL.Path

	buf := new(bytes.Buffer)
	if err := ts.Execute(buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
