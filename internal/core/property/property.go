// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package property defines the listing catalogue of the agency.

A listing is a property offered for sale (VENTA) or rent (ALQUILER). The public
site browses published listings only; the back-office manages every listing,
including drafts.

Core Responsibility:

  - Catalogue: Defines operations, property types and currencies.
  - Discovery: Filters by operation, type, price range, locality and features.
  - SEO: Addresses listings by a stable slug and publishes them in the sitemap.
*/
package property

import "time"

// # Domain Enums

// TransactionType is the commercial operation a listing is offered under.
type TransactionType string

const (
	TransactionVenta    TransactionType = "VENTA"
	TransactionAlquiler TransactionType = "ALQUILER"
)

// IsValid reports whether t is a recognised [TransactionType].
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionVenta, TransactionAlquiler:
		return true
	}
	return false
}

// PropertyType classifies the real estate being offered.
type PropertyType string

const (
	TypeTerreno           PropertyType = "TERRENO"
	TypeDepartamento      PropertyType = "DEPARTAMENTO"
	TypeCasa              PropertyType = "CASA"
	TypeQuinta            PropertyType = "QUINTA"
	TypeOficina           PropertyType = "OFICINA"
	TypeLocal             PropertyType = "LOCAL"
	TypeEdificioComercial PropertyType = "EDIFICIO_COMERCIAL"
	TypeCampo             PropertyType = "CAMPO"
	TypePH                PropertyType = "PH"
)

// AllPropertyTypes lists every [PropertyType] in display order.
var AllPropertyTypes = []PropertyType{
	TypeTerreno,
	TypeDepartamento,
	TypeCasa,
	TypeQuinta,
	TypeOficina,
	TypeLocal,
	TypeEdificioComercial,
	TypeCampo,
	TypePH,
}

// IsValid reports whether t is a recognised [PropertyType].
func (t PropertyType) IsValid() bool {
	for _, known := range AllPropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Currency is the currency a price is quoted in.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// IsValid reports whether c is a recognised [Currency].
func (c Currency) IsValid() bool {
	return c == CurrencyARS || c == CurrencyUSD
}

// Sort selects the ordering of a listing page.
type Sort string

const (
	SortPriceAsc      Sort = "price_asc"
	SortPriceDesc     Sort = "price_desc"
	SortCreatedAtAsc  Sort = "createdAt_asc"
	SortCreatedAtDesc Sort = "createdAt_desc"
)

// IsValid reports whether s is a recognised [Sort].
func (s Sort) IsValid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortCreatedAtAsc, SortCreatedAtDesc:
		return true
	}
	return false
}

// # Domain Entities

// Property is a single listing of the catalogue.
type Property struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Description     *string         `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	PropertyType    *PropertyType   `json:"propertyType"`
	Price           float64         `json:"price"`
	Currency        Currency        `json:"currency"`
	Address         *string         `json:"address"`
	LocalidadID     *string         `json:"localidadId"`
	LocalidadNombre *string         `json:"localidadNombre"`
	Bedrooms        *int            `json:"bedrooms"`
	Bathrooms       *int            `json:"bathrooms"`
	AreaM2          *float64        `json:"areaM2"`
	Images          []string        `json:"images"`
	Published       bool            `json:"published"`
	Featured        bool            `json:"featured"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SitemapEntry is the slice of a published listing the sitemap needs.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// # Query Parameters

// Filter narrows a listing page. Zero values mean "no constraint".
type Filter struct {
	// PublishedOnly restricts the page to listings visible on the public site.
	PublishedOnly bool
	// Published filters drafts or published listings in the back-office.
	Published *bool

	Operation    TransactionType
	Types        []PropertyType
	Currency     Currency
	MinPrice     *float64
	MaxPrice     *float64
	LocalidadID  string
	Featured     *bool
	MinBedrooms  *int
	MinBathrooms *int

	// Query matches titles and addresses (back-office search box).
	Query string

	Sort Sort
}

// Input is the editable part of a listing, as submitted by the back-office form.
type Input struct {
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Description     *string         `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	PropertyType    *PropertyType   `json:"propertyType"`
	Price           float64         `json:"price"`
	Currency        Currency        `json:"currency"`
	Address         *string         `json:"address"`
	LocalidadID     *string         `json:"localidadId"`
	LocalidadNombre *string         `json:"localidadNombre"`
	Bedrooms        *int            `json:"bedrooms"`
	Bathrooms       *int            `json:"bathrooms"`
	AreaM2          *float64        `json:"areaM2"`
	Images          []string        `json:"images"`
	Published       bool            `json:"published"`
	Featured        bool            `json:"featured"`
}

// # Field Names

const (
	FieldSlug            = "slug"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldTransactionType = "transactionType"
	FieldPropertyType    = "propertyType"
	FieldPrice           = "price"
	FieldCurrency        = "currency"
	FieldBedrooms        = "bedrooms"
	FieldBathrooms       = "bathrooms"
	FieldAreaM2          = "areaM2"
	FieldImages          = "images"

	// query parameters
	ParamOperation    = "operation"
	ParamTypes        = "types"
	ParamMinPrice     = "minPrice"
	ParamMaxPrice     = "maxPrice"
	ParamLocalidadID  = "localidadId"
	ParamFeatured     = "featured"
	ParamPublished    = "published"
	ParamMinBedrooms  = "bedrooms"
	ParamMinBathrooms = "bathrooms"
	ParamCurrency     = "currency"
	ParamSort         = "sort"
	ParamQuery        = "q"
)
