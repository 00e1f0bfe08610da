// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package auth

import (
	"time"

	"github.com/setrini/inmobiliaria/internal/platform/sec"
)

// # Domain Entities

// Admin is a back-office account allowed to manage listings.
type Admin struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"displayName"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"isActive"`
	LastLoginAt  *time.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Session is a refresh session. Only the SHA-256 of the refresh token is stored.
type Session struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"adminId"`
	TokenHash string    `json:"tokenHash"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Field Names

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "displayName"
	FieldRole        = "role"

	FieldAccessToken = "accessToken"
	FieldTokenType   = "tokenType"
	FieldExpiresIn   = "expiresIn"
	FieldUser        = "user"
)
