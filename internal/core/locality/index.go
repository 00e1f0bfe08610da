// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package locality

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// # Query Limits

const (
	// MinQueryLength is the normalized rune count below which a query yields nothing.
	MinQueryLength = 3

	// DefaultLimit applies when the caller passes a non-positive limit.
	DefaultLimit = 20

	// MaxLimit caps a single response.
	MaxLimit = 100
)

// Index is an immutable, sorted list of unique search entries.
type Index struct {
	entries []Entry
	builtAt time.Time
}

/*
BuildIndex filters, deduplicates and sorts raw records into an [Index].

Description:
 1. Keep records whose normalized province name contains the normalized scope.
 2. Drop records with an empty ID or an empty normalized name.
 3. Keep the first record per normalized name, in dataset order.
 4. Sort ascending by key using byte-wise comparison.

An empty scope keeps every province.

Parameters:
  - records: []RawRecord
  - scope: string (e.g. "buenos aires")

Returns:
  - *Index: Ready to search, possibly empty
*/
func BuildIndex(records []RawRecord, scope string) *Index {
	target := Normalize(scope)
	seen := make(map[string]struct{}, len(records))
	entries := make([]Entry, 0, len(records))

	for _, record := range records {

		// 1. Scope filter
		if !strings.Contains(Normalize(record.provinceName()), target) {
			continue
		}

		// 2. Malformed records are excluded silently
		id := strings.TrimSpace(string(record.ID))
		key := Normalize(record.Nombre)
		if id == "" || key == "" {
			continue
		}

		// 3. First occurrence wins
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		entries = append(entries, Entry{Key: key, Locality: record.toLocality(id)})
	}

	// 4. Keys are unique, so an unstable sort is deterministic
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})

	return &Index{entries: slices.Clip(entries)}
}

// Len returns the number of entries.
func (index *Index) Len() int {
	return len(index.entries)
}

// BuiltAt returns when the index was published. Zero for indexes built outside a [Service].
func (index *Index) BuiltAt() time.Time {
	return index.builtAt
}

// Keys returns a copy of the sorted keys.
func (index *Index) Keys() []string {
	keys := make([]string, len(index.entries))
	for i, entry := range index.entries {
		keys[i] = entry.Key
	}
	return keys
}

/*
Search returns up to limit localities whose key starts with prefix, in key order.

Description: prefix must already be normalized. The scan starts at the lower
bound of prefix and stops at the first key that no longer matches, since every
key sharing a prefix is contiguous in sorted order.

Parameters:
  - prefix: string (normalized)
  - limit: int (clamped to [1, MaxLimit], non-positive means DefaultLimit)

Returns:
  - []Locality: Never nil
*/
func (index *Index) Search(prefix string, limit int) []Locality {
	limit = clampLimit(limit)
	results := make([]Locality, 0, min(limit, 16))

	for i := lowerBound(index.entries, prefix); i < len(index.entries) && len(results) < limit; i++ {
		if !strings.HasPrefix(index.entries[i].Key, prefix) {
			break
		}
		results = append(results, index.entries[i].Locality)
	}

	return results
}

// lowerBound returns the smallest i with entries[i].Key >= target, or len(entries).
func lowerBound(entries []Entry, target string) int {
	return sort.Search(len(entries), func(i int) bool {
		return entries[i].Key >= target
	})
}

// clampLimit maps non-positive limits to DefaultLimit and caps at MaxLimit.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
