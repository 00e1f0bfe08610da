// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package property provides the HTTP interface of the listing catalogue.

# Routing Strategy

  - Public (v1): Browsing of published listings (GET /properties).
  - Back-office (v1): Full CRUD under /admin/properties. The caller guards that router.
  - SEO: GET /sitemap.xml, mounted at the root by the server.
*/
package property

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/setrini/inmobiliaria/internal/platform/request"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
	"github.com/setrini/inmobiliaria/internal/platform/validate"
	"github.com/setrini/inmobiliaria/pkg/pagination"
	"github.com/setrini/inmobiliaria/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the listing catalogue.
type Handler struct {
	service *Service

	// baseURL is the public site origin used for sitemap locations.
	baseURL string
	now     func() time.Time
}

// NewHandler constructs a new property [Handler].
func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// RegisterRoutes mounts the public catalogue.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getPublished)
}

// RegisterAdminRoutes mounts the back-office CRUD. The caller guards the router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listAll)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

// # Public Endpoints

/*
GET /api/v1/properties.

Description: Returns a page of published listings.

Request:
  - page, limit: int
  - operation: VENTA | ALQUILER
  - types: comma-separated property types (unknown values ignored)
  - currency: ARS | USD
  - minPrice, maxPrice: number
  - localidadId: string
  - featured: bool
  - bedrooms, bathrooms: int (minimum)
  - sort: price_asc | price_desc | createdAt_asc | createdAt_desc

Response:
  - 200: { data, total, page, limit, totalPages }
  - 400: ErrValidation: Malformed enum or number
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	filter, err := ParseFilter(request.URL.Query(), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListPublished(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}

/*
GET /api/v1/properties/{slug}.

Response:
  - 200: Property
  - 404: ErrNotFound: Unknown slug or unpublished listing
*/
func (handler *Handler) getPublished(writer http.ResponseWriter, request *http.Request) {
	property, err := handler.service.GetPublished(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, property)
}

// # Back-office Endpoints

// GET /api/v1/admin/properties. Accepts the public filters plus "published" and "q".
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	filter, err := ParseFilter(request.URL.Query(), true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListAll(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}

// GET /api/v1/admin/properties/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	property, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, property)
}

// POST /api/v1/admin/properties.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	property, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, property)
}

// PUT /api/v1/admin/properties/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	property, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, property)
}

// DELETE /api/v1/admin/properties/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Query Parsing

/*
ParseFilter reads listing filters from a query string.

Description: Malformed numbers and unknown enum values for single-valued
parameters are validation errors. Unknown entries of the multi-valued "types"
parameter are ignored. The back-office additionally accepts "published" and "q".

Returns:
  - Filter: The parsed filter
  - error: apperr validation error listing every offending parameter
*/
func ParseFilter(values url.Values, backOffice bool) (Filter, error) {
	validator := &validate.Validator{}
	var filter Filter

	// Operation
	if raw := strings.TrimSpace(values.Get(ParamOperation)); raw != "" {
		filter.Operation = TransactionType(strings.ToUpper(raw))
		validator.Custom(ParamOperation, !filter.Operation.IsValid(), "Must be VENTA or ALQUILER")
	}

	// Types (unknown entries dropped)
	for _, raw := range query.StringSlice(values.Get(ParamTypes)) {
		propertyType := PropertyType(strings.ToUpper(raw))
		if propertyType.IsValid() {
			filter.Types = append(filter.Types, propertyType)
		}
	}

	// Currency
	if raw := strings.TrimSpace(values.Get(ParamCurrency)); raw != "" {
		filter.Currency = Currency(strings.ToUpper(raw))
		validator.Custom(ParamCurrency, !filter.Currency.IsValid(), "Must be ARS or USD")
	}

	// Price range
	var ok bool
	filter.MinPrice, ok = query.OptionalFloat(values.Get(ParamMinPrice))
	validator.Custom(ParamMinPrice, !ok || (filter.MinPrice != nil && *filter.MinPrice < 0), "Must be a non-negative number")

	filter.MaxPrice, ok = query.OptionalFloat(values.Get(ParamMaxPrice))
	validator.Custom(ParamMaxPrice, !ok || (filter.MaxPrice != nil && *filter.MaxPrice < 0), "Must be a non-negative number")

	if filter.MinPrice != nil && filter.MaxPrice != nil {
		validator.Custom(ParamMaxPrice, *filter.MaxPrice < *filter.MinPrice, "Must not be below minPrice")
	}

	// Locality
	filter.LocalidadID = strings.TrimSpace(values.Get(ParamLocalidadID))

	// Featured
	filter.Featured, ok = query.OptionalBool(values.Get(ParamFeatured))
	validator.Custom(ParamFeatured, !ok, "Must be true or false")

	// Minimum rooms
	filter.MinBedrooms, ok = query.OptionalInt(values.Get(ParamMinBedrooms))
	validator.Custom(ParamMinBedrooms, !ok || (filter.MinBedrooms != nil && *filter.MinBedrooms < 0), "Must be a non-negative integer")

	filter.MinBathrooms, ok = query.OptionalInt(values.Get(ParamMinBathrooms))
	validator.Custom(ParamMinBathrooms, !ok || (filter.MinBathrooms != nil && *filter.MinBathrooms < 0), "Must be a non-negative integer")

	// Sort
	filter.Sort = SortCreatedAtDesc
	if raw := strings.TrimSpace(values.Get(ParamSort)); raw != "" {
		filter.Sort = Sort(raw)
		validator.Custom(ParamSort, !filter.Sort.IsValid(), "Must be one of: price_asc, price_desc, createdAt_asc, createdAt_desc")
	}

	// Back-office only
	if backOffice {
		filter.Published, ok = query.OptionalBool(values.Get(ParamPublished))
		validator.Custom(ParamPublished, !ok, "Must be true or false")
		filter.Query = strings.TrimSpace(values.Get(ParamQuery))
	}

	if err := validator.Err(); err != nil {
		return Filter{}, err
	}
	return filter, nil
}
