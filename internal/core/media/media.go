// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package media accepts listing images from the back-office and publishes them
to object storage.

Uploads are identified by their content, not by the client's claims: the
MIME type is sniffed from the bytes and only web image formats are accepted.
*/
package media

import (
	"context"
	"io"
)

// allowedTypes maps accepted MIME types to the extension used in object keys.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/avif": "avif",
}

// fallbackName names objects whose original filename has no usable characters.
const fallbackName = "imagen"

// maxNameLength bounds the sanitized filename part of an object key.
const maxNameLength = 60

// Storage is the object store an upload is written to.
type Storage interface {
	Put(context context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// Upload describes a stored image.
type Upload struct {
	PublicURL   string `json:"publicUrl"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
