// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package ctxkey holds the context keys read by [ctxutil]. The key type is
// unexported, so values set by other packages under the same string never match.
package ctxkey

// Key identifies one request-scoped value.
type Key struct{ name string }

func (k Key) String() string { return "inmobiliaria/" + k.name }

var (
	// KeyRequestID carries the X-Request-ID value.
	KeyRequestID = Key{"request_id"}

	// KeyUser carries the verified admin claims.
	KeyUser = Key{"user"}

	// KeyLogger carries the request logger.
	KeyLogger = Key{"logger"}
)
