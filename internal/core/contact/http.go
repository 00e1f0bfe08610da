// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/setrini/inmobiliaria/internal/platform/middleware"
	requestutil "github.com/setrini/inmobiliaria/internal/platform/request"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
	"github.com/setrini/inmobiliaria/pkg/pagination"
)

// Handler implements the HTTP layer for enquiries.
type Handler struct {
	service *Service
}

// NewHandler constructs a contact [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public contact form.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.submit)
}

// RegisterAdminRoutes mounts the inbox. The caller guards the router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.list)
}

/*
POST /api/v1/contact.

Request:
  - name: string (min 2)
  - email: string
  - phone: string (optional)
  - message: string (min 10)
  - propertyId: string (UUID, optional)

Response:
  - 201: Receipt
  - 400: ErrValidation
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, err := handler.service.Submit(request.Context(), input, middleware.RealIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, receipt)
}

// GET /api/v1/admin/contact-messages.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}
