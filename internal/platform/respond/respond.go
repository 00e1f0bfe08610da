// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package respond writes the JSON envelopes shared by the public site and the
// admin panel: {"data":...} on success and {"error","code","details"} on failure.
package respond

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/ctxutil"
	"github.com/setrini/inmobiliaria/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// MetaEnvelope is the JSON envelope for responses that carry request metadata.
type MetaEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// WithMeta writes a 200 OK response with data and a metadata block.
func WithMeta(writer http.ResponseWriter, data, meta any) {
	JSON(writer, http.StatusOK, MetaEnvelope{Data: data, Meta: meta})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 OK response with a flat page: data, total, page, limit, totalPages.
func Paginated[T any](writer http.ResponseWriter, page pagination.Page[T]) {
	JSON(writer, http.StatusOK, page)
}

// Raw writes a non-JSON body such as the sitemap document.
func Raw(writer http.ResponseWriter, statusCode int, contentType string, body []byte) {
	writer.Header().Set(constants.HeaderContentType, contentType)
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(body)
}

// CacheFor lets shared caches keep the response for maxAge. Call before writing.
func CacheFor(writer http.ResponseWriter, maxAge time.Duration) {
	writer.Header().Set(constants.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error writes err as an [ErrorEnvelope]. Errors that are not [apperr.AppError]
// become 500 INTERNAL_ERROR; their text stays in the server log.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	context := request.Context()

	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(context).ErrorContext(context, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(context)),
			slog.Any("error", err),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
