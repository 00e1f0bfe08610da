// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package auth

import (
	"context"
	"time"
)

// AdminRepository persists back-office accounts.
type AdminRepository interface {
	// FindByEmail looks up an account by its lowercased email.
	// Returns apperr.NotFound when absent.
	FindByEmail(context context.Context, email string) (*Admin, error)

	// FindByID returns apperr.NotFound when absent.
	FindByID(context context.Context, id string) (*Admin, error)

	// Create inserts a new account. A duplicate email yields apperr.Conflict.
	Create(context context.Context, admin *Admin) error

	// TouchLastLogin records a successful login.
	TouchLastLogin(context context.Context, id string, at time.Time) error
}

// SessionRepository keeps refresh sessions.
type SessionRepository interface {
	// Create stores a session until its ExpiresAt.
	Create(context context.Context, session *Session) error

	// Consume atomically fetches and deletes the session for a token hash.
	// A missing or expired session yields apperr.NotFound.
	Consume(context context.Context, tokenHash string) (*Session, error)

	// RevokeAll removes every session belonging to an account.
	RevokeAll(context context.Context, adminID string) error
}
