// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package property

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/beevik/etree"

	"github.com/setrini/inmobiliaria/internal/platform/ctxutil"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapMaxAge    = time.Hour
)

// CatalogPath is the public listing index; detail pages live below it.
const CatalogPath = "/propiedades"

// sitemapURL is one <url> element of the sitemap.
type sitemapURL struct {
	location   string
	modified   time.Time
	changeFreq string
	priority   string
}

/*
BuildSitemap renders a sitemaps.org urlset for the public site.

Description: The home page and the catalogue index are always present, stamped
with now. Each entry adds its detail page with the listing's UpdatedAt.

Parameters:
  - baseURL: string (public origin without trailing slash)
  - entries: []SitemapEntry (may be nil)
  - now: time.Time

Returns:
  - []byte: The XML document
  - error: Serialization failures
*/
func BuildSitemap(baseURL string, entries []SitemapEntry, now time.Time) ([]byte, error) {
	urls := []sitemapURL{
		{location: baseURL, modified: now, changeFreq: "daily", priority: "1.0"},
		{location: baseURL + CatalogPath, modified: now, changeFreq: "daily", priority: "0.9"},
	}
	for _, entry := range entries {
		urls = append(urls, sitemapURL{
			location:   baseURL + CatalogPath + "/" + url.PathEscape(entry.Slug),
			modified:   entry.UpdatedAt,
			changeFreq: "weekly",
			priority:   "0.8",
		})
	}

	document := etree.NewDocument()
	document.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := document.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	for _, item := range urls {
		element := urlset.CreateElement("url")
		element.CreateElement("loc").SetText(item.location)
		element.CreateElement("lastmod").SetText(item.modified.UTC().Format(time.RFC3339))
		element.CreateElement("changefreq").SetText(item.changeFreq)
		element.CreateElement("priority").SetText(item.priority)
	}

	document.Indent(2)
	return document.WriteToBytes()
}

/*
GET /sitemap.xml.

Description: A failing listing query degrades to the static pages instead of
an error, so crawlers always receive a valid document.
*/
func (handler *Handler) Sitemap(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.SitemapEntries(request.Context())
	if err != nil {
		ctxutil.GetLogger(request.Context()).Warn("sitemap_listings_unavailable", slog.Any("error", err))
		entries = nil
	}

	body, err := BuildSitemap(handler.baseURL, entries, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CacheFor(writer, sitemapMaxAge)
	respond.Raw(writer, http.StatusOK, "application/xml; charset=utf-8", body)
}
