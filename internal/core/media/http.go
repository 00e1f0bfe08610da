// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package media

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
)

// formField is the multipart field carrying the file.
const formField = "file"

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 1 << 20

type Handler struct {
	service *Service
}

// NewHandler constructs an upload [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the upload endpoint. The caller guards the router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/", handler.upload)
}

/*
POST /api/v1/admin/uploads.

Request:
  - multipart/form-data with a "file" part (max 10 MiB)

Response:
  - 201: Upload
  - 400: Missing file part
  - 413: File too large
  - 415: Not a supported image type
  - 503: Storage not configured
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	if !handler.service.Enabled() {
		respond.Error(writer, request, errStorageDisabled)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes+multipartOverhead)

	file, header, err := request.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge(constants.MaxUploadBytes))
			return
		}
		respond.Error(writer, request, apperr.BadRequest(`Expected a multipart "file" field`))
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadBytes {
		respond.Error(writer, request, apperr.PayloadTooLarge(constants.MaxUploadBytes))
		return
	}

	// One extra byte tells an exact-limit file apart from an oversized one.
	content, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Could not read the uploaded file"))
		return
	}

	upload, err := handler.service.Upload(request.Context(), header.Filename, content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, upload)
}
