// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package locality implements the place-name typeahead behind the listing filters
and the property form.

A static dataset of several thousand localities is fetched once, reduced to
the configured province, keyed by an accent-insensitive normalized name and
sorted. Every keystroke then costs a binary search plus a short forward scan.

Architecture:

  - Source: Fetches the raw dataset from a file or a static URL.
  - Index: Immutable sorted entries, searched by prefix.
  - Service: Builds the index lazily behind a single in-flight guard and
    publishes it atomically. Failed builds are not cached.
  - Handler: JSON endpoints for search and admin reload.
*/
package locality

import "strings"

// labelSeparator joins the parts of a display label.
const labelSeparator = " - "

// # Domain Entities

// Division is an administrative unit above a locality (province or department).
type Division struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Locality is a searchable place. Values are never mutated once an index is published.
type Locality struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Province   *Division `json:"province,omitempty"`
	Department *Division `json:"department,omitempty"`
}

// Label returns the human-readable form used by pickers, see [Format].
func (locality Locality) Label() string {
	return Format(locality)
}

/*
Format renders a locality as "Name - Department - Province".

Description: The department and the province are appended only when present
and non-empty, so a locality without divisions renders as its bare name.

Parameters:
  - locality: Locality

Returns:
  - string: Display label
*/
func Format(locality Locality) string {
	parts := []string{locality.Name}

	if locality.Department != nil && locality.Department.Name != "" {
		parts = append(parts, locality.Department.Name)
	}

	if locality.Province != nil && locality.Province.Name != "" {
		parts = append(parts, locality.Province.Name)
	}

	return strings.Join(parts, labelSeparator)
}

// Entry pairs a locality with its normalized search key.
type Entry struct {
	Key      string
	Locality Locality
}
