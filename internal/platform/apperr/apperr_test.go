// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
)

/*
TestConstructors maps each constructor to its status and code.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		status int
		code   string
	}{
		{apperr.NotFound("Property"), http.StatusNotFound, apperr.CodeNotFound},
		{apperr.BadRequest("x"), http.StatusBadRequest, apperr.CodeBadRequest},
		{apperr.ValidationError("x"), http.StatusBadRequest, apperr.CodeValidation},
		{apperr.Unauthorized("x"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{apperr.Forbidden("x"), http.StatusForbidden, apperr.CodeForbidden},
		{apperr.Conflict("x"), http.StatusConflict, apperr.CodeConflict},
		{apperr.PayloadTooLarge(10 << 20), http.StatusRequestEntityTooLarge, apperr.CodePayloadTooLarge},
		{apperr.UnsupportedMediaType("text/plain"), http.StatusUnsupportedMediaType, apperr.CodeUnsupportedMediaType},
		{apperr.Unprocessable("x"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{apperr.RateLimited(6), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
		{apperr.BadGateway("x", nil), http.StatusBadGateway, apperr.CodeBadGateway},
		{apperr.ServiceUnavailable("x"), http.StatusServiceUnavailable, apperr.CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestMessages checks the human-readable texts built from arguments.
*/
func TestMessages(t *testing.T) {
	assert.Equal(t, "Property not found", apperr.NotFound("Property").Error())
	assert.Equal(t, "File exceeds the 10 MiB limit", apperr.PayloadTooLarge(10<<20).Error())
	assert.Equal(t, "Too many requests. Try again in 6s.", apperr.RateLimited(6).Error())
	assert.Equal(t, "An unexpected error occurred", apperr.Internal(errors.New("secret")).Error())
}

/*
TestAs_ThroughWrapping finds the AppError behind fmt.Errorf wrapping.
*/
func TestAs_ThroughWrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	wrapped := fmt.Errorf("storage_put_failed: %w", apperr.BadGateway("Upload failed", cause))

	appErr := apperr.As(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeBadGateway, appErr.Code)
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, apperr.As(cause))
}

/*
TestIsNotFound matches only NOT_FOUND errors.
*/
func TestIsNotFound(t *testing.T) {
	assert.True(t, apperr.IsNotFound(fmt.Errorf("lookup: %w", apperr.NotFound("Admin"))))
	assert.False(t, apperr.IsNotFound(apperr.Conflict("x")))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
	assert.False(t, apperr.IsNotFound(nil))
	assert.True(t, apperr.HasCode(apperr.Conflict("x"), apperr.CodeConflict))
}
