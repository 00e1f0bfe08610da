// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package locality

// LowerBound exposes lowerBound to the black-box tests.
var LowerBound = lowerBound

// Entries exposes the sorted entries of an index.
func (index *Index) Entries() []Entry {
	return index.entries
}
