// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package requestutil extracts path parameters, query values, JSON bodies and
the authenticated admin from incoming requests.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/ctxutil"
	"github.com/setrini/inmobiliaria/internal/platform/validate"
	"github.com/setrini/inmobiliaria/pkg/query"
)

// maxJSONBody bounds JSON request bodies; listing payloads are a few KB.
const maxJSONBody = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}

	body := http.MaxBytesReader(nil, request.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns a trimmed record identifier from the route, e.g. {id}.
func ID(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

// Param returns a raw route parameter such as a slug.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryInt reads an integer query value.

Missing or unparseable values yield fallback; callers that must reject bad
input parse the query themselves.
*/
func QueryInt(request *http.Request, name string, fallback int) int {
	return query.IntOr(request.URL.Query().Get(name), fallback)
}

/*
RequiredUserID returns the ID of the signed-in admin.

Returns:
  - string: Admin UUID
  - error: apperr.Unauthorized if the request carries no verified token
*/
func RequiredUserID(request *http.Request) (string, error) {
	adminID := ctxutil.AdminID(request.Context())
	if adminID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return adminID, nil
}
