//go:build unit

package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_T(t *testing.T) {
	c, err := New("ar")
	require.NoError(t, err)

	assert.Equal(t, "الرجاء ادخل عنوان الخبر", c.T("ar", "news.title_required"))
	assert.Equal(t, "Enter the news content", c.T("en", "news.body_required"))
	assert.Equal(t, "حجم الصورة يجب ان يكون اقل من 3MB", c.T("fr", "image.size"), "unknown language falls back to default")
	assert.Equal(t, "no.such.key", c.T("en", "no.such.key"))
}

func TestCatalog_EveryKeyTranslated(t *testing.T) {
	c, err := New("ar")
	require.NoError(t, err)

	for key := range c.translations["ar"] {
		_, ok := c.translations["en"][key]
		assert.True(t, ok, "missing en translation for %s", key)
	}
	for key := range c.translations["en"] {
		_, ok := c.translations["ar"][key]
		assert.True(t, ok, "missing ar translation for %s", key)
	}
}

func TestCatalog_Match(t *testing.T) {
	c, err := New("ar")
	require.NoError(t, err)

	tests := []struct {
		in, want string
	}{
		{"en-US,en;q=0.9", "en"},
		{"ar-IQ", "ar"},
		{"en", "en"},
		{"fr-FR", "ar"},
		{"", "ar"},
		{"!!", "ar"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Match(tt.in))
		})
	}
}

func TestNew_RejectsUnknownDefault(t *testing.T) {
	_, err := New("de")
	assert.Error(t, err)
}

func TestDirAndContext(t *testing.T) {
	assert.Equal(t, "rtl", Dir("ar"))
	assert.Equal(t, "ltr", Dir("en"))

	ctx := WithLanguage(context.Background(), "en")
	assert.Equal(t, "en", LanguageFrom(ctx))
	assert.Equal(t, "", LanguageFrom(context.Background()))
}
