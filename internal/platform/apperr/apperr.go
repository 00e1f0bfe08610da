// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package apperr defines the error type every service returns to the HTTP layer.

An [AppError] pairs a stable machine code with a message the public site or
the admin panel may show, plus the HTTP status [respond.Error] writes. Errors
that are not AppErrors are reported as 500 INTERNAL_ERROR.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
)

// Machine-readable codes. Clients branch on these, never on messages.
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeUnprocessable        = "UNPROCESSABLE"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
	CodeBadGateway           = "BAD_GATEWAY"
	CodeUnavailable          = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type for the catalogue API.
//
// Cause is logged server-side and never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound returns "<resource> not found", e.g. NotFound("Property").
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// BadRequest is for malformed input that is not tied to one form field.
func BadRequest(message string) *AppError {
	return newError(http.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// Conflict covers unique violations such as a taken slug or email.
func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// PayloadTooLarge names the upload limit in human units ("10 MiB").
func PayloadTooLarge(maxBytes int64) *AppError {
	return newError(http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
		"File exceeds the "+humanize.IBytes(uint64(maxBytes))+" limit")
}

// UnsupportedMediaType reports the sniffed MIME type of a rejected upload.
func UnsupportedMediaType(detected string) *AppError {
	return newError(http.StatusUnsupportedMediaType, CodeUnsupportedMediaType, "Unsupported file type: "+detected)
}

// ValidationError is a 400 carrying per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, CodeValidation, message)
	err.Details = details
	return err
}

// RateLimited is a 429; the caller also sets Retry-After.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Unprocessable is a 422 for input that parses but references missing data.
func Unprocessable(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, CodeUnprocessable, message)
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	err := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// BadGateway reports a failing upstream such as object storage or the mail provider.
func BadGateway(message string, cause error) *AppError {
	err := newError(http.StatusBadGateway, CodeBadGateway, message)
	err.Cause = cause
	return err
}

// ServiceUnavailable reports a disabled or unreachable dependency.
func ServiceUnavailable(message string) *AppError {
	return newError(http.StatusServiceUnavailable, CodeUnavailable, message)
}

// # Helpers

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err's chain holds an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}

// IsNotFound is HasCode(err, CodeNotFound).
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}
