// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package locality

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

/*
Normalize folds text into its comparison key.

Description: Lower-cases, decomposes to NFD, removes combining marks (Mn) and
trims surrounding whitespace. "Florencio Varela", "FLORENCIO VARELA" and
"florencio várela" all share one key. The result is stable under a second pass.

Parameters:
  - text: string

Returns:
  - string: Normalized key
*/
func Normalize(text string) string {

	// Lower-case first so case mappings that introduce marks (İ -> i̇) are stripped too.
	lowered := strings.ToLower(text)

	// A transform.Chain keeps internal state, so each call builds its own.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

	folded, _, err := transform.String(stripper, lowered)
	if err != nil {
		folded = lowered
	}

	return strings.TrimSpace(folded)
}
