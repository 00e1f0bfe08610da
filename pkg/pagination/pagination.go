// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package pagination reads ?page= and ?limit= and shapes the flat page
// envelope the listing grid and the enquiry inbox consume.
package pagination

import (
	"math"
	"net/http"

	"github.com/setrini/inmobiliaria/pkg/query"
)

const (
	DefaultLimit = 12
	MaxLimit     = 50
	DefaultPage  = 1

	// MaxPage keeps (page-1)*limit inside a Postgres integer OFFSET.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET for p.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is the response body of every paginated endpoint.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPage wraps one page of items. Data is never null in JSON.
func NewPage[T any](items []T, params Params, total int) Page[T] {
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Data:       items,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: TotalPages(total, params.Limit),
	}
}

// TotalPages is the ceiling of total/limit, zero when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// FromRequest reads page and limit. Malformed or non-positive values fall
// back to the defaults, page is capped at [MaxPage] and limit at [MaxLimit].
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()

	page := query.IntOr(values.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := query.IntOr(values.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}

	return Params{Page: min(page, MaxPage), Limit: min(limit, MaxLimit)}
}
