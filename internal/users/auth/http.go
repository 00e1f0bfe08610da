// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/middleware"
	requestutil "github.com/setrini/inmobiliaria/internal/platform/request"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
	"github.com/setrini/inmobiliaria/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the back-office authentication endpoints.
type Handler struct {
	authService   *Service
	secureCookies bool
	loginGuards   []func(http.Handler) http.Handler
}

// NewHandler constructs a [Handler]. secureCookies is false only for plain-HTTP development.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// WithLoginGuard adds middleware, typically a rate limiter, in front of POST /login only.
func (handler *Handler) WithLoginGuard(guards ...func(http.Handler) http.Handler) *Handler {
	handler.loginGuards = append(handler.loginGuards, guards...)
	return handler
}

/*
RegisterRoutes mounts the authentication endpoints.

Endpoints:
  - POST /login      : Exchanges credentials for tokens.
  - POST /refresh    : Rotates the refresh cookie.
  - POST /logout     : Revokes the refresh cookie.
  - GET  /me         : Current account (auth required).
  - POST /logout-all : Revokes every session (auth required).
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(handler.loginGuards...).Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.me)
		protected.Post("/logout-all", handler.logoutAll)
	})
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        *Admin `json:"user"`
}

// # Handlers

/*
POST /api/v1/auth/login.

Request:
  - Body: loginRequest (email, password)

Response:
  - 200: tokenResponse, refresh cookie set
  - 400: ErrValidation
  - 401: ErrUnauthorized
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writeSession(writer, session)
}

/*
POST /api/v1/auth/refresh.

Response:
  - 200: tokenResponse with a rotated refresh cookie
  - 401: Missing, expired or replayed refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	session, err := handler.authService.RefreshSession(
		request.Context(),
		cookie.Value,
		request.UserAgent(),
		middleware.RealIP(request),
	)
	if err != nil {
		handler.clearCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.writeSession(writer, session)
}

// POST /api/v1/auth/logout. Always 204; the cookie is cleared either way.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearCookie(writer)
	respond.NoContent(writer)
}

// GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.authService.Me(request.Context(), adminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, admin)
}

// POST /api/v1/auth/logout-all.
func (handler *Handler) logoutAll(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.LogoutAll(request.Context(), adminID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearCookie(writer)
	respond.NoContent(writer)
}

// # Cookie Helpers

func (handler *Handler) writeSession(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, tokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(AccessTokenTTL / time.Second),
		User:        session.Admin,
	})
}

func (handler *Handler) clearCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
