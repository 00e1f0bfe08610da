// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package media

import (
	"bytes"
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/metrics"
	"github.com/setrini/inmobiliaria/pkg/slug"
	"github.com/setrini/inmobiliaria/pkg/uuid"
)

// Service validates and stores uploads.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

var errStorageDisabled = apperr.ServiceUnavailable("Image storage is not configured")

// NewService constructs a [Service]. A nil storage disables uploads.
func NewService(storage Storage, logger *slog.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// Enabled reports whether an object store is configured.
func (service *Service) Enabled() bool {
	return service.storage != nil
}

/*
Upload stores an image and returns its public address.

Parameters:
  - context: context.Context
  - filename: string (client-supplied, used only for the readable key suffix)
  - content: []byte (whole file, at most constants.MaxUploadBytes)

Returns:
  - *Upload: Key and public URL
  - error: 413, 415, 503 when storage is disabled, 502 on storage failure
*/
func (service *Service) Upload(context context.Context, filename string, content []byte) (*Upload, error) {

	// 1. Storage availability
	if !service.Enabled() {
		return nil, errStorageDisabled
	}

	// 2. Size
	if len(content) == 0 {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, apperr.BadRequest("File is empty")
	}
	if int64(len(content)) > constants.MaxUploadBytes {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, apperr.PayloadTooLarge(constants.MaxUploadBytes)
	}

	// 3. Content sniffing
	detected := mimetype.Detect(content)
	contentType, extension, ok := acceptedType(detected)
	if !ok {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, apperr.UnsupportedMediaType(detected.String())
	}

	// 4. Store
	key := ObjectKey(uuid.New(), filename, extension)
	if err := service.storage.Put(context, key, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperr.BadGateway("Image storage rejected the upload", err)
	}

	metrics.UploadsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	service.logger.InfoContext(context, "media_uploaded",
		slog.String("key", key),
		slog.String("content_type", contentType),
		slog.Int("size", len(content)),
	)

	return &Upload{
		PublicURL:   service.storage.PublicURL(key),
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(content)),
	}, nil
}

// ObjectKey renders "properties/{id}-{sanitized-name}.{ext}".
func ObjectKey(id, filename, extension string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	name := slug.From(base)
	if len(name) > maxNameLength {
		name = strings.Trim(name[:maxNameLength], "-")
	}
	if name == "" {
		name = fallbackName
	}

	return constants.UploadKeyPrefix + id + "-" + name + "." + extension
}

// acceptedType walks the detected type and its parents for an allowed image type.
func acceptedType(detected *mimetype.MIME) (contentType, extension string, ok bool) {
	for current := detected; current != nil; current = current.Parent() {
		for candidate, ext := range allowedTypes {
			if current.Is(candidate) {
				return candidate, ext, true
			}
		}
	}
	return "", "", false
}
