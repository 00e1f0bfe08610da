// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/ctxutil"
	"github.com/setrini/inmobiliaria/internal/platform/middleware"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

type fakeVerifier struct {
	claims *sec.AuthClaims
}

func (verifier fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

type fakeConfig struct {
	development bool
	suffix      string
}

func (cfg fakeConfig) IsDevelopment() bool  { return cfg.development }
func (cfg fakeConfig) OriginSuffix() string { return cfg.suffix }

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequestID keeps a client supplied ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-1")
	recorder := serve(handler, request)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestAuthenticate covers anonymous, malformed, rejected and accepted tokens.
*/
func TestAuthenticate(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleEditor)}
	var seen *sec.AuthClaims
	handler := middleware.Authenticate(fakeVerifier{claims: claims})(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = middleware.GetUser(request.Context())
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantClaims bool
	}{
		{"anonymous", "", http.StatusOK, false},
		{"wrong_scheme", "Basic abc", http.StatusUnauthorized, false},
		{"missing_token", "Bearer ", http.StatusUnauthorized, false},
		{"invalid_token", "Bearer nope", http.StatusUnauthorized, false},
		{"valid", "Bearer good", http.StatusOK, true},
		{"case_insensitive_scheme", "bearer good", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}

			recorder := serve(handler, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantClaims, seen != nil)
		})
	}
}

/*
TestRequireRole maps anonymous to 401 and insufficient roles to 403.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.Authenticate(fakeVerifier{claims: &sec.AuthClaims{UserID: "a", Role: string(sec.RoleEditor)}})(
		middleware.RequireRole(sec.RoleAdmin)(okHandler),
	)
	editorHandler := middleware.Authenticate(fakeVerifier{claims: &sec.AuthClaims{UserID: "a", Role: string(sec.RoleEditor)}})(
		middleware.RequireRole(sec.RoleEditor)(okHandler),
	)
	adminForEditor := middleware.Authenticate(fakeVerifier{claims: &sec.AuthClaims{UserID: "a", Role: string(sec.RoleAdmin)}})(
		middleware.RequireRole(sec.RoleEditor)(okHandler),
	)

	authorized := func() *http.Request {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderAuthorization, "Bearer good")
		return request
	}

	assert.Equal(t, http.StatusUnauthorized, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(handler, authorized()).Code)
	assert.Equal(t, http.StatusOK, serve(editorHandler, authorized()).Code)
	assert.Equal(t, http.StatusOK, serve(adminForEditor, authorized()).Code)
}

/*
TestRequireAuth rejects anonymous requests.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(okHandler)
	assert.Equal(t, http.StatusUnauthorized, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

/*
TestRateLimiter_Allow exhausts the burst and reports a retry delay.
*/
func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.5, 2)

	allowed, _ := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed)

	allowed, wait := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	// Buckets are per client.
	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed)
}

/*
TestRateLimiter_Handler answers 429 with Retry-After once the burst is spent.
*/
func TestRateLimiter_Handler(t *testing.T) {
	handler := middleware.NewRateLimiter(0.1, 1).Handler(okHandler)

	request := func() *http.Request {
		request := httptest.NewRequest(http.MethodPost, "/contact", nil)
		request.RemoteAddr = "192.0.2.7:5000"
		return request
	}

	assert.Equal(t, http.StatusOK, serve(handler, request()).Code)

	recorder := serve(handler, request())
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "10", recorder.Header().Get(constants.HeaderRetryAfter))
	assert.Contains(t, recorder.Body.String(), "RATE_LIMITED")
}

/*
TestRateLimiter_Sweep forgets clients idle past the TTL.
*/
func TestRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := middleware.NewRateLimiter(1, 1)
	limiter.SetClock(func() time.Time { return now })

	limiter.Allow("a")
	now = now.Add(constants.RateLimitClientTTL / 2)
	limiter.Allow("b")
	require.Equal(t, 2, limiter.Len())

	now = now.Add(constants.RateLimitClientTTL/2 + time.Second)
	limiter.Sweep()
	assert.Equal(t, 1, limiter.Len())
}

/*
TestCORS allows the configured domain and its subdomains only.
*/
func TestCORS(t *testing.T) {
	production := middleware.CORS(fakeConfig{suffix: "marilesetrini.com"})(okHandler)

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://marilesetrini.com", true},
		{"https://www.marilesetrini.com", true},
		{"https://admin.marilesetrini.com:8443", true},
		{"https://evilmarilesetrini.com", false},
		{"https://marilesetrini.com.evil.io", false},
		{"null", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)

			recorder := serve(production, request)
			allowed := recorder.Header().Get("Access-Control-Allow-Origin") == tt.origin
			assert.Equal(t, tt.want, allowed)
		})
	}

	development := middleware.CORS(fakeConfig{development: true})(okHandler)
	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set(constants.HeaderOrigin, "http://localhost:3000")
	recorder := serve(development, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestOriginAllowed rejects an empty suffix instead of matching everything.
*/
func TestOriginAllowed(t *testing.T) {
	assert.False(t, middleware.OriginAllowed("https://example.com", ""))
	assert.True(t, middleware.OriginAllowed("https://EXAMPLE.com", ".example.com"))
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.1.1.1:1234"
	assert.Equal(t, "10.1.1.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.9")
	assert.Equal(t, "198.51.100.9", middleware.RealIP(request))
}

/*
TestPanicRecovery turns a panic into a 500 JSON error.
*/
func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestStructuredLogger injects a request logger and keeps the handler status.
*/
func TestStructuredLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var injected *slog.Logger
	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		injected = ctxutil.GetLogger(request.Context())
		writer.WriteHeader(http.StatusCreated)
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotNil(t, injected)
	assert.NotSame(t, logger, injected)
}
