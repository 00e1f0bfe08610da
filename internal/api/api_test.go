// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/api"
	"github.com/setrini/inmobiliaria/internal/core/contact"
	"github.com/setrini/inmobiliaria/internal/core/locality"
	"github.com/setrini/inmobiliaria/internal/core/media"
	"github.com/setrini/inmobiliaria/internal/core/property"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
	"github.com/setrini/inmobiliaria/internal/users/auth"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type failingSource struct{}

func (failingSource) Fetch(context.Context) (*locality.Dataset, error) {
	return nil, errors.New("dataset offline")
}

type roleVerifier struct{}

func (roleVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "editor", "admin":
		return &sec.AuthClaims{UserID: "u-" + token, Role: token}, nil
	}
	return nil, errors.New("invalid")
}

type appConfig struct{}

func (appConfig) IsDevelopment() bool  { return true }
func (appConfig) OriginSuffix() string { return "" }

func newRouter(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	liveness, readiness := api.NewHealthHandlers(deps, discard)
	localities := locality.NewService(failingSource{}, "buenos aires", discard)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return api.NewRouter(ctx, appConfig{}, discard, roleVerifier{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, nil, nil, discard), false),
		Property:  property.NewHandler(property.NewService(nil, discard), "https://example.com"),
		Locality:  locality.NewHandler(localities),
		Contact:   contact.NewHandler(contact.NewService(nil, nil, nil, "", discard)),
		Media:     media.NewHandler(media.NewService(nil, discard)),
	})
}

func do(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRouter_BackOfficeGuards checks role requirements on the admin tree.
*/
func TestRouter_BackOfficeGuards(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"properties_anonymous", http.MethodGet, "/api/v1/admin/properties", "", http.StatusUnauthorized},
		{"inbox_anonymous", http.MethodGet, "/api/v1/admin/contact-messages", "", http.StatusUnauthorized},
		{"uploads_anonymous", http.MethodPost, "/api/v1/admin/uploads", "", http.StatusUnauthorized},
		{"reload_editor", http.MethodPost, "/api/v1/admin/localities/reload", "editor", http.StatusForbidden},
		{"reload_admin", http.MethodPost, "/api/v1/admin/localities/reload", "admin", http.StatusOK},
		{"invalid_token", http.MethodGet, "/api/v1/localities?q=flo", "forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(router, tt.method, tt.target, tt.token).Code)
		})
	}
}

/*
TestRouter_PublicLocalities answers even when the dataset cannot be loaded.
*/
func TestRouter_PublicLocalities(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	recorder := do(router, http.MethodGet, "/api/v1/localities?q=flo", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"status":"load_failed","query":"flo"}}`, recorder.Body.String())
}

/*
TestRouter_UploadsDisabled reports 503 when object storage is not configured.
*/
func TestRouter_UploadsDisabled(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	recorder := do(router, http.MethodPost, "/api/v1/admin/uploads", "editor")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

/*
TestHealth reports liveness and aggregates readiness checks.
*/
func TestHealth(t *testing.T) {
	state := locality.State{Status: locality.StatusNotLoaded}
	healthy := api.Check{Name: "postgres", Run: func(context.Context) error { return nil }}
	broken := api.Check{Name: "redis", Run: func(context.Context) error { return errors.New("connection refused") }}

	router := newRouter(t, api.HealthDependencies{
		Checks:        []api.Check{healthy},
		LocalityState: func() locality.State { return state },
	})
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "").Code)

	recorder := do(router, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Status   string         `json:"status"`
			Locality locality.State `json:"locality"`
			Checks   []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Data.Status)
	assert.Equal(t, locality.StatusNotLoaded, body.Data.Locality.Status)
	require.Len(t, body.Data.Checks, 1)
	assert.True(t, body.Data.Checks[0].OK)

	degraded := newRouter(t, api.HealthDependencies{Checks: []api.Check{healthy, broken}})
	recorder = do(degraded, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "connection refused")
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
}
