// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package property

import (
	"context"
	"errors"
)

// ErrSlugTaken is returned by [Repository.Create] and [Repository.Update] when
// the slug is already used by another listing.
var ErrSlugTaken = errors.New("property_slug_taken")

// # Property Data Access

// Repository defines the data access contract for the listing catalogue.
type Repository interface {

	/*
		List returns a filtered, paginated slice of listings and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Property: Matching listings in the requested order
		  - int: Total count of listings matching the filter, also for a page past the end
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Property, int, error)

	// FindByID returns the listing with the given ID, published or not.
	FindByID(context context.Context, id string) (*Property, error)

	// FindBySlug returns the listing with the given slug. With publishedOnly,
	// drafts are reported as not found.
	FindBySlug(context context.Context, slug string, publishedOnly bool) (*Property, error)

	// Create persists a new listing. It returns [ErrSlugTaken] on a slug collision.
	Create(context context.Context, property *Property) error

	// Update overwrites the editable fields of a listing and refreshes UpdatedAt.
	Update(context context.Context, property *Property) error

	// Delete removes a listing.
	Delete(context context.Context, id string) error

	// ListSitemap returns slug and modification time of every published listing.
	ListSitemap(context context.Context) ([]SitemapEntry, error)
}
