package handler

import (
	"college-site/internal/service"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	baseURL string
	news    service.NewsServicer
}

// NewSeoHandler creates a new SeoHandler. baseURL is the public origin of the site.
func NewSeoHandler(baseURL string, news service.NewsServicer) *SeoHandler {
	return &SeoHandler{baseURL: strings.TrimRight(baseURL, "/"), news: news}
}

// robotsHandler serves robots.txt. The admin console is excluded.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /admin")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

const sitemapDateFormat = "2006-01-02"

// publicSections are the pages listed in the sitemap.
var publicSections = []string{"/home", "/news", "/events", "/library", "/staff"}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler serves sitemap.xml listing the public sections. The news
// page carries the date of the latest article.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, len(publicSections)),
	}
	for i, path := range publicSections {
		sitemap.URLs[i] = sitemapURL{Loc: h.baseURL + path}
	}

	news, err := h.news.Published(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve news for sitemap", http.StatusInternalServerError)
		return
	}
	if len(news) > 0 {
		latest := news[0].CreatedAt
		if news[0].UpdatedAt != nil {
			latest = *news[0].UpdatedAt
		}
		sitemap.URLs[1].LastMod = latest.Format(sitemapDateFormat)
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
