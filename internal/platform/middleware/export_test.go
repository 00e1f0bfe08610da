// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package middleware

import "time"

// SetClock replaces the limiter clock.
func (limiter *RateLimiter) SetClock(now func() time.Time) {
	limiter.now = now
}

// OriginAllowed exposes originAllowed to the black-box tests.
var OriginAllowed = originAllowed
