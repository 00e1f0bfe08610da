// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/validate"
	"github.com/setrini/inmobiliaria/pkg/pagination"
	"github.com/setrini/inmobiliaria/pkg/pointer"
	"github.com/setrini/inmobiliaria/pkg/slice"
	"github.com/setrini/inmobiliaria/pkg/slug"
	"github.com/setrini/inmobiliaria/pkg/uuid"
)

const (
	// maxSlugAttempts bounds the "-2", "-3"... suffixes tried on collisions.
	maxSlugAttempts = 50

	// fallbackSlug is used when a title has no ASCII-representable characters.
	fallbackSlug = "propiedad"

	maxTitleLength       = 200
	maxDescriptionLength = 10000
	maxImages            = 30
)

// # Service Layer

// Service orchestrates the business logic of the listing catalogue.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Public Catalogue

/*
ListPublished returns a page of listings visible on the public site.

Parameters:
  - context: context.Context
  - filter: Filter (PublishedOnly is forced on)
  - params: pagination.Params

Returns:
  - pagination.Page[*Property]: The page and its totals
  - error: Repository failures
*/
func (service *Service) ListPublished(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Property], error) {
	filter.PublishedOnly = true
	filter.Published = nil
	return service.list(context, filter, params)
}

// GetPublished returns the published listing with the given slug.
func (service *Service) GetPublished(context context.Context, slugValue string) (*Property, error) {
	if strings.TrimSpace(slugValue) == "" {
		return nil, apperr.NotFound(resourceName)
	}
	return service.repository.FindBySlug(context, slugValue, true)
}

// # Back-office

// ListAll returns a page of listings, drafts included.
func (service *Service) ListAll(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Property], error) {
	filter.PublishedOnly = false
	return service.list(context, filter, params)
}

// Get returns any listing by ID.
func (service *Service) Get(context context.Context, id string) (*Property, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceName)
	}
	return service.repository.FindByID(context, id)
}

/*
Create validates and persists a new listing.

Description: The slug is taken from the input when present, otherwise derived
from the title. On a collision the slug gets a numeric suffix ("-2", "-3"...)
until a free one is found.

Parameters:
  - context: context.Context
  - input: Input

Returns:
  - *Property: The stored listing with its timestamps
  - error: Validation, conflict or persistence errors
*/
func (service *Service) Create(context context.Context, input Input) (*Property, error) {

	// 1. Validate the submitted form
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// 2. Build the entity
	property := &Property{ID: uuid.New()}
	applyInput(property, input)

	// 3. Persist, probing suffixes on slug collisions
	base := slugBase(input)
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		property.Slug = slug.WithSuffix(base, attempt)

		err := service.repository.Create(context, property)
		if errors.Is(err, ErrSlugTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		service.logger.Info("property_created",
			slog.String("property_id", property.ID),
			slog.String("slug", property.Slug),
		)
		return property, nil
	}

	return nil, apperr.Conflict(fmt.Sprintf("No free slug derived from %q", base))
}

/*
Update replaces the editable fields of a listing.

Description: The slug is stable across title edits so published URLs keep
working. It changes only when the form sends a different one explicitly.
*/
func (service *Service) Update(context context.Context, id string, input Input) (*Property, error) {

	// 1. Validate the submitted form
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// 2. Load the current state
	property, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	// 3. Apply the changes
	applyInput(property, input)
	if requested := strings.TrimSpace(input.Slug); requested != "" {
		property.Slug = requested
	}

	// 4. Persist
	err = service.repository.Update(context, property)
	if errors.Is(err, ErrSlugTaken) {
		return nil, apperr.Conflict(fmt.Sprintf("Slug %q is already in use", property.Slug))
	}
	if err != nil {
		return nil, err
	}

	service.logger.Info("property_updated",
		slog.String("property_id", property.ID),
		slog.String("slug", property.Slug),
	)
	return property, nil
}

// Delete removes a listing.
func (service *Service) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceName)
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("property_deleted", slog.String("property_id", id))
	return nil
}

// SitemapEntries returns the published listings for the sitemap.
func (service *Service) SitemapEntries(context context.Context) ([]SitemapEntry, error) {
	return service.repository.ListSitemap(context)
}

// # Helpers

func (service *Service) list(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Property], error) {
	properties, total, err := service.repository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return pagination.Page[*Property]{}, err
	}
	return pagination.NewPage(properties, params, total), nil
}

// validateInput applies the back-office form rules.
func validateInput(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, 5).
		MaxLen(FieldTitle, input.Title, maxTitleLength)

	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, maxDescriptionLength)
	}

	if requested := strings.TrimSpace(input.Slug); requested != "" {
		validator.Slug(FieldSlug, requested).MaxLen(FieldSlug, requested, slug.MaxLength)
	}

	validator.Required(FieldTransactionType, string(input.TransactionType)).
		Custom(FieldTransactionType, input.TransactionType != "" && !input.TransactionType.IsValid(), "Must be VENTA or ALQUILER")

	if input.PropertyType != nil && *input.PropertyType != "" {
		validator.Custom(FieldPropertyType, !input.PropertyType.IsValid(), "Unknown property type")
	}

	if input.Currency != "" {
		validator.Custom(FieldCurrency, !input.Currency.IsValid(), "Must be ARS or USD")
	}

	validator.NonNegative(FieldPrice, input.Price)
	if input.Bedrooms != nil {
		validator.NonNegative(FieldBedrooms, float64(*input.Bedrooms))
	}
	if input.Bathrooms != nil {
		validator.NonNegative(FieldBathrooms, float64(*input.Bathrooms))
	}
	if input.AreaM2 != nil {
		validator.NonNegative(FieldAreaM2, *input.AreaM2)
	}

	validator.MaxItems(FieldImages, len(input.Images), maxImages)
	for i, image := range input.Images {
		validator.URL(fmt.Sprintf("%s[%d]", FieldImages, i), image)
	}

	return validator.Err()
}

// applyInput copies the form onto the entity, normalizing optional fields.
func applyInput(property *Property, input Input) {
	property.Title = strings.TrimSpace(input.Title)
	property.Description = trimmedOrNil(input.Description)
	property.TransactionType = input.TransactionType
	property.PropertyType = pointer.NilIfZero(input.PropertyType)
	property.Price = input.Price
	property.Currency = input.Currency
	if property.Currency == "" {
		property.Currency = CurrencyUSD
	}
	property.Address = trimmedOrNil(input.Address)
	property.LocalidadID = trimmedOrNil(input.LocalidadID)
	property.LocalidadNombre = trimmedOrNil(input.LocalidadNombre)
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.AreaM2 = input.AreaM2
	property.Images = slice.Map(input.Images, strings.TrimSpace)
	property.Published = input.Published
	property.Featured = input.Featured
}

// slugBase picks the requested slug or derives one from the title.
func slugBase(input Input) string {
	if requested := strings.TrimSpace(input.Slug); requested != "" {
		return requested
	}
	if derived := slug.From(input.Title); derived != "" {
		return derived
	}
	return fallbackSlug
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	return pointer.NilIfZero(pointer.To(strings.TrimSpace(*value)))
}
