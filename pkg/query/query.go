// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package query parses the loosely typed values found in URL query strings.
package query

import (
	"strconv"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// OptionalFloat parses val when present. ok is false for malformed input.
func OptionalFloat(val string) (result *float64, ok bool) {
	if strings.TrimSpace(val) == "" {
		return nil, true
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return nil, false
	}
	return &number, true
}

// IntOr parses val, returning fallback when it is empty or malformed.
func IntOr(val string, fallback int) int {
	number, ok := OptionalInt(val)
	if !ok || number == nil {
		return fallback
	}
	return *number
}

// OptionalInt parses val when present. ok is false for malformed input.
func OptionalInt(val string) (result *int, ok bool) {
	if strings.TrimSpace(val) == "" {
		return nil, true
	}
	number, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return nil, false
	}
	return &number, true
}

// OptionalBool parses "true/false/1/0" when present. ok is false for malformed input.
func OptionalBool(val string) (result *bool, ok bool) {
	if strings.TrimSpace(val) == "" {
		return nil, true
	}
	flag, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return nil, false
	}
	return &flag, true
}
