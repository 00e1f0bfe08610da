// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package slug turns listing titles into ASCII URL segments,
// e.g. "Casa 3 ambientes en Lanús" becomes "casa-3-ambientes-en-lanus".
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds a generated slug, before any numeric suffix.
const MaxLength = 80

// From lowercases s, strips accents and joins the remaining ASCII letters and
// digits with single hyphens. Other characters act as separators.
func From(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		stripped = s
	}

	var builder strings.Builder
	builder.Grow(len(stripped))
	pendingHyphen := false

	for _, r := range strings.ToLower(stripped) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return truncate(builder.String())
}

// truncate cuts at the last hyphen past the midpoint so words stay whole.
func truncate(slug string) string {
	if len(slug) <= MaxLength {
		return slug
	}

	slug = slug[:MaxLength]
	if cut := strings.LastIndexByte(slug, '-'); cut > MaxLength/2 {
		slug = slug[:cut]
	}
	return strings.TrimRight(slug, "-")
}

// WithSuffix returns base for n <= 1 and "base-n" otherwise.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
