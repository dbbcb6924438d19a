package service

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// renderer turns stored Markdown into sanitized HTML for public pages.
type renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func newRenderer() *renderer {
	// UGCPolicy allows basic formatting like links, lists and emphasis while
	// stripping out dangerous HTML.
	return &renderer{md: goldmark.New(), sanitizer: bluemonday.UGCPolicy()}
}

func (r *renderer) render(source string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes()))
}
