// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package ctxutil reads and writes the request-scoped values shared by the
// middleware chain and the handlers: request ID, logger and admin claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/setrini/inmobiliaria/internal/platform/ctxkey"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
)

// valueOf returns the typed value stored under key, or the zero value.
func valueOf[T any](ctx context.Context, key ctxkey.Key) T {
	value, _ := ctx.Value(key).(T)
	return value
}

// # Request Tracing

// WithRequestID attaches the correlation ID set by the RequestID middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	return valueOf[string](ctx, ctxkey.KeyRequestID)
}

// # Structured Logging

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := valueOf[*slog.Logger](ctx, ctxkey.KeyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// # Back-office Identity

// WithAuthUser attaches verified access token claims.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	return valueOf[*sec.AuthClaims](ctx, ctxkey.KeyUser)
}

// AdminID returns the authenticated account ID, or "" for anonymous requests.
func AdminID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
