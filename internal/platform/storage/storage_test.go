// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package storage_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/platform/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

/*
TestNewClient_NotConfigured refuses incomplete settings.
*/
func TestNewClient_NotConfigured(t *testing.T) {
	_, err := storage.NewClient(storage.Options{Bucket: "fotos"}, discard)
	assert.ErrorIs(t, err, storage.ErrNotConfigured)
}

/*
TestPublicURL prefers the CDN origin and falls back to the path-style URL.
*/
func TestPublicURL(t *testing.T) {
	base := storage.Options{
		Endpoint:  "https://nyc3.digitaloceanspaces.com",
		Region:    "nyc3",
		Bucket:    "setrini",
		AccessKey: "key",
		SecretKey: "secret",
	}

	pathStyle, err := storage.NewClient(base, discard)
	require.NoError(t, err)
	assert.Equal(t,
		"https://nyc3.digitaloceanspaces.com/setrini/properties/abc-casa.jpg",
		pathStyle.PublicURL("properties/abc-casa.jpg"),
	)

	withCDN := base
	withCDN.CDNURL = "https://cdn.marilesetrini.com/"
	cdn, err := storage.NewClient(withCDN, discard)
	require.NoError(t, err)
	assert.Equal(t,
		"https://cdn.marilesetrini.com/properties/abc-casa.jpg",
		cdn.PublicURL("properties/abc-casa.jpg"),
	)
}

/*
TestJoinURL escapes each key segment but keeps the separators.
*/
func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example/a%20b/c.png", storage.JoinURL("https://cdn.example/", "/a b/c.png"))
}
