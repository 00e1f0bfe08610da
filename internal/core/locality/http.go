// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package locality

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/setrini/inmobiliaria/internal/platform/request"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
	"github.com/setrini/inmobiliaria/pkg/slice"
)

// Suggestion is the wire shape of one typeahead result.
type Suggestion struct {
	Locality
	Label string `json:"label"`
}

// SearchMeta tells the picker whether an empty list means "no match" or "not available".
type SearchMeta struct {
	Status Status `json:"status"`
	Query  string `json:"query"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public typeahead.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.search)
}

// RegisterAdminRoutes mounts index maintenance. The caller guards the router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/reload", handler.reload)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")

	// Unparseable limits fall back to the default like non-positive ones.
	limit := requestutil.QueryInt(request, "limit", 0)

	results := handler.service.Search(request.Context(), query, limit)

	suggestions := slice.Map(results, func(locality Locality) Suggestion {
		return Suggestion{Locality: locality, Label: locality.Label()}
	})

	respond.WithMeta(writer, suggestions, SearchMeta{
		Status: handler.service.State().Status,
		Query:  Normalize(query),
	})
}

func (handler *Handler) reload(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Reload(request.Context()))
}
