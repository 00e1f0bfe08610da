// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package property_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/core/property"
)

/*
TestBuildSitemap checks the urlset structure and the per-page metadata.
*/
func TestBuildSitemap(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	entries := []property.SitemapEntry{
		{Slug: "ph-en-lanus", UpdatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	body, err := property.BuildSitemap("https://marilesetrini.com", entries, now)
	require.NoError(t, err)

	document := etree.NewDocument()
	require.NoError(t, document.ReadFromBytes(body))

	urlset := document.SelectElement("urlset")
	require.NotNil(t, urlset)
	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", urlset.SelectAttrValue("xmlns", ""))

	urls := urlset.SelectElements("url")
	require.Len(t, urls, 3)

	tests := []struct {
		loc        string
		lastmod    string
		changefreq string
		priority   string
	}{
		{"https://marilesetrini.com", "2026-03-10T08:30:00Z", "daily", "1.0"},
		{"https://marilesetrini.com/propiedades", "2026-03-10T08:30:00Z", "daily", "0.9"},
		{"https://marilesetrini.com/propiedades/ph-en-lanus", "2026-01-05T00:00:00Z", "weekly", "0.8"},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.loc, urls[i].SelectElement("loc").Text())
		assert.Equal(t, tt.lastmod, urls[i].SelectElement("lastmod").Text())
		assert.Equal(t, tt.changefreq, urls[i].SelectElement("changefreq").Text())
		assert.Equal(t, tt.priority, urls[i].SelectElement("priority").Text())
	}
}
