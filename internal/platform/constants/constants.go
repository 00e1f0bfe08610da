// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package constants holds the timeouts, limits, header names and key
// prefixes shared by more than one package.
package constants

import "time"

// # Metadata

const (
	AppName    = "inmobiliaria-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout leaves room for a 10 MiB image upload.
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout also bounds Postgres statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Per-IP budget for every route.
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// Idle limiter entries are swept every interval once older than the TTL.
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute

	// FormRateLimitRPS throttles public forms (contact, login) per IP: one request every 6s.
	FormRateLimitRPS = 1.0 / 6

	// FormRateLimitBurst allows a short burst before the form limiter engages.
	FormRateLimitBurst = 5
)

// # Authentication

const (
	AuthIssuer = "setrini.inmobiliaria"

	// The refresh cookie is only sent to the auth routes.
	RefreshTokenCookieName = "refresh_token"
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRetryAfter    = "Retry-After"
	HeaderCacheControl  = "Cache-Control"
)

// # Health Payload

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixSession = "auth:session:"
	RedisPrefixUserSet = "auth:user_sessions:"
)

// # Uploads

const (
	// MaxUploadBytes bounds a single image upload.
	MaxUploadBytes = 10 << 20

	// UploadKeyPrefix is the object key prefix for listing images.
	UploadKeyPrefix = "properties/"
)
