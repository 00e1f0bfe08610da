// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package auth

import "time"

// # Token Lifetimes

const (
	// AccessTokenTTL is the lifetime of a signed back-office access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is how long an idle refresh session survives in Redis.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// RefreshTokenLength is the number of random bytes in a refresh token.
	RefreshTokenLength = 32
)

// # Credential Policy

const (
	// MinPasswordLength applies to accounts created from the admin CLI.
	MinPasswordLength = 10

	// MaxPasswordLength matches the bcrypt input limit.
	MaxPasswordLength = 72
)
