// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/dberr"
)

/*
TestWrap maps driver errors onto client-safe application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND"},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, "CONFLICT"},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, http.StatusUnprocessableEntity, "UNPROCESSABLE"},
		{"check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "Property"))
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.code, appError.Code)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Property"))
	assert.Equal(t, "Property not found", dberr.Wrap(pgx.ErrNoRows, "Property").Error())
}

/*
TestIsUniqueViolation matches by SQLSTATE and optional constraint name.
*/
func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "property_slug_key"})

	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.True(t, dberr.IsUniqueViolation(err, "property_slug_key"))
	assert.False(t, dberr.IsUniqueViolation(err, "admin_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom"), ""))
}
