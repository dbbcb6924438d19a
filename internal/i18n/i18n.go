// Package i18n provides the Arabic and English translations of the site.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// SupportedLanguages lists the site languages. The first one is the fallback.
var SupportedLanguages = []string{"ar", "en"}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
// It is read-only after New returns.
type Catalog struct {
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
}

// New loads the embedded catalogs. defaultLang must be one of SupportedLanguages.
func New(defaultLang string) (*Catalog, error) {
	c := &Catalog{translations: make(map[string]map[string]string)}

	// The matcher falls back to its first tag, so the default goes first.
	ordered := []string{defaultLang}
	found := false
	for _, lang := range SupportedLanguages {
		if lang == defaultLang {
			found = true
			continue
		}
		ordered = append(ordered, lang)
	}
	if !found {
		return nil, fmt.Errorf("unsupported default language %q", defaultLang)
	}

	for _, lang := range ordered {
		if err := c.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("failed to load language %s: %w", lang, err)
		}
		c.supported = append(c.supported, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(c.supported)
	c.defaultLang = defaultLang
	return c, nil
}

func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}
	return nil
}

// T translates key into lang, falling back to the default language and then
// to the key itself. Arguments are applied with fmt.Sprintf.
func (c *Catalog) T(lang, key string, args ...any) string {
	translation, ok := c.translations[lang][key]
	if !ok {
		translation, ok = c.translations[c.defaultLang][key]
		if !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// Default returns the fallback language.
func (c *Catalog) Default() string {
	return c.defaultLang
}

// IsSupported reports whether lang is one of the site languages.
func (c *Catalog) IsSupported(lang string) bool {
	_, ok := c.translations[lang]
	return ok
}

// Match finds the best supported language for an Accept-Language header or a
// single language code.
func (c *Catalog) Match(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return c.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.supported) {
		return c.defaultLang
	}
	base, _ := c.supported[idx].Base()
	return base.String()
}

// Dir returns the text direction of lang.
func Dir(lang string) string {
	if lang == "ar" {
		return "rtl"
	}
	return "ltr"
}

type contextKey struct{}

// WithLanguage stores lang in ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// LanguageFrom returns the language stored in ctx, or "" if there is none.
func LanguageFrom(ctx context.Context) string {
	lang, _ := ctx.Value(contextKey{}).(string)
	return lang
}
