// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package property provides the PostgreSQL implementation for the catalogue's data access.

The listing query is assembled dynamically from the [Filter]:
  - Window Function: COUNT(*) OVER() returns the total match count in the same round-trip.
  - Set Operations: ANY($n) matches the multi-select property type filter.
  - Arrays: images are stored as TEXT[] and scanned straight into []string.
*/
package property

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/setrini/inmobiliaria/internal/platform/database/schema"
	"github.com/setrini/inmobiliaria/internal/platform/dberr"
)

// resourceName labels NOT_FOUND and constraint errors.
const resourceName = "Property"

// likeEscaper escapes LIKE metacharacters in user-supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// # PostgreSQL Repository

// propertyRepository implements [Repository] using pgx.
type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed listing store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &propertyRepository{pool: pool}
}

// selectColumns renders the entity columns with the "p." alias, in scan order.
func selectColumns() string {
	columns := schema.CoreProperty.Columns()
	for i, column := range columns {
		columns[i] = "p." + column
	}
	return strings.Join(columns, ", ")
}

/*
buildListQuery renders the listing SELECT for a filter.

Returns:
  - string: SQL with positional placeholders
  - []any: Arguments in placeholder order (limit and offset last)
*/
func buildListQuery(filter Filter, limit, offset int) (string, []any) {
	table := schema.CoreProperty

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s p WHERE TRUE`, selectColumns(), table.Table))

	args := writeFilter(&queryBuilder, filter)
	argID := len(args) + 1

	// Ordering, with the id as a stable tie-breaker across pages
	orderBy := fmt.Sprintf("p.%s DESC", table.CreatedAt)
	switch filter.Sort {
	case SortPriceAsc:
		orderBy = fmt.Sprintf("p.%s ASC", table.Price)
	case SortPriceDesc:
		orderBy = fmt.Sprintf("p.%s DESC", table.Price)
	case SortCreatedAtAsc:
		orderBy = fmt.Sprintf("p.%s ASC", table.CreatedAt)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, p.%s ASC", orderBy, table.ID))

	// Pagination
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	return queryBuilder.String(), args
}

// buildCountQuery counts the rows matching a filter, ignoring pagination.
func buildCountQuery(filter Filter) (string, []any) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE TRUE`, schema.CoreProperty.Table))

	args := writeFilter(&queryBuilder, filter)
	return queryBuilder.String(), args
}

// writeFilter appends the WHERE conditions of a filter and returns their
// arguments, numbered from $1.
func writeFilter(queryBuilder *strings.Builder, filter Filter) []any {
	table := schema.CoreProperty

	var args []any
	argID := 1

	// Visibility
	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s", table.Published))
	} else if filter.Published != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", table.Published, argID))
		args = append(args, *filter.Published)
		argID++
	}

	// Operation
	if filter.Operation != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", table.TransactionType, argID))
		args = append(args, string(filter.Operation))
		argID++
	}

	// Property types (multi-select)
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, propertyType := range filter.Types {
			types = append(types, string(propertyType))
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = ANY($%d)", table.PropertyType, argID))
		args = append(args, types)
		argID++
	}

	// Currency
	if filter.Currency != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", table.Currency, argID))
		args = append(args, string(filter.Currency))
		argID++
	}

	// Price range
	if filter.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s >= $%d", table.Price, argID))
		args = append(args, *filter.MinPrice)
		argID++
	}
	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s <= $%d", table.Price, argID))
		args = append(args, *filter.MaxPrice)
		argID++
	}

	// Locality
	if filter.LocalidadID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", table.LocalidadID, argID))
		args = append(args, filter.LocalidadID)
		argID++
	}

	// Featured
	if filter.Featured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", table.Featured, argID))
		args = append(args, *filter.Featured)
		argID++
	}

	// Minimum rooms
	if filter.MinBedrooms != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s >= $%d", table.Bedrooms, argID))
		args = append(args, *filter.MinBedrooms)
		argID++
	}
	if filter.MinBathrooms != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s >= $%d", table.Bathrooms, argID))
		args = append(args, *filter.MinBathrooms)
		argID++
	}

	// Free text (title or address)
	if query := strings.TrimSpace(filter.Query); query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (p.%s ILIKE $%d OR p.%s ILIKE $%d)", table.Title, argID, table.Address, argID))
		args = append(args, "%"+likeEscaper.Replace(query)+"%")
	}

	return args
}

// List implements [Repository].
func (repository *propertyRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Property, int, error) {
	query, args := buildListQuery(filter, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	var total int
	properties := make([]*Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	// A page past the end carries no window count
	if len(properties) == 0 && offset > 0 {
		countQuery, countArgs := buildCountQuery(filter)
		if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
	}

	return properties, total, nil
}

// FindByID implements [Repository].
func (repository *propertyRepository) FindByID(context context.Context, id string) (*Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s p WHERE p.%s = $1`,
		selectColumns(), schema.CoreProperty.Table, schema.CoreProperty.ID)

	property, err := scanProperty(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return property, nil
}

// FindBySlug implements [Repository].
func (repository *propertyRepository) FindBySlug(context context.Context, slug string, publishedOnly bool) (*Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s p WHERE p.%s = $1`,
		selectColumns(), schema.CoreProperty.Table, schema.CoreProperty.Slug)
	if publishedOnly {
		query += fmt.Sprintf(" AND p.%s", schema.CoreProperty.Published)
	}

	property, err := scanProperty(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return property, nil
}

// Create implements [Repository].
func (repository *propertyRepository) Create(context context.Context, property *Property) error {
	table := schema.CoreProperty

	// All columns except the two timestamps, which default to now()
	columns := table.Columns()[:len(table.Columns())-2]
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		table.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		table.CreatedAt, table.UpdatedAt,
	)

	args := []any{property.ID}
	args = append(args, editableArgs(property)...)

	err := repository.pool.QueryRow(context, query, args...).Scan(&property.CreatedAt, &property.UpdatedAt)
	return classifyWriteError(err)
}

// Update implements [Repository].
func (repository *propertyRepository) Update(context context.Context, property *Property) error {
	table := schema.CoreProperty

	// Editable columns are everything between the id and the timestamps
	editable := table.Columns()[1 : len(table.Columns())-2]
	assignments := make([]string, len(editable))
	for i, column := range editable {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s, %s = now() WHERE %s = $1 RETURNING %s, %s`,
		table.Table,
		strings.Join(assignments, ", "),
		table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	args := []any{property.ID}
	args = append(args, editableArgs(property)...)

	err := repository.pool.QueryRow(context, query, args...).Scan(&property.CreatedAt, &property.UpdatedAt)
	return classifyWriteError(err)
}

// Delete implements [Repository].
func (repository *propertyRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreProperty.Table, schema.CoreProperty.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName)
	}
	return nil
}

// ListSitemap implements [Repository].
func (repository *propertyRepository) ListSitemap(context context.Context) ([]SitemapEntry, error) {
	table := schema.CoreProperty
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s ORDER BY %s DESC`,
		table.Slug, table.UpdatedAt, table.Table, table.Published, table.UpdatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SitemapEntry, error) {
		var entry SitemapEntry
		err := row.Scan(&entry.Slug, &entry.UpdatedAt)
		return entry, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return entries, nil
}

// # Scanning Helpers

// editableArgs returns the values of the columns between id and the timestamps.
func editableArgs(property *Property) []any {
	images := property.Images
	if images == nil {
		images = []string{}
	}

	var propertyType *string
	if property.PropertyType != nil {
		value := string(*property.PropertyType)
		propertyType = &value
	}

	return []any{
		property.Slug,
		property.Title,
		property.Description,
		string(property.TransactionType),
		propertyType,
		property.Price,
		string(property.Currency),
		property.Address,
		property.LocalidadID,
		property.LocalidadNombre,
		property.Bedrooms,
		property.Bathrooms,
		property.AreaM2,
		images,
		property.Published,
		property.Featured,
	}
}

// scanProperty reads a row laid out by [selectColumns], plus any trailing extras.
func scanProperty(row pgx.Row, extra ...any) (*Property, error) {
	var (
		property        Property
		transactionType string
		propertyType    *string
		currency        string
	)

	destinations := []any{
		&property.ID,
		&property.Slug,
		&property.Title,
		&property.Description,
		&transactionType,
		&propertyType,
		&property.Price,
		&currency,
		&property.Address,
		&property.LocalidadID,
		&property.LocalidadNombre,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.AreaM2,
		&property.Images,
		&property.Published,
		&property.Featured,
		&property.CreatedAt,
		&property.UpdatedAt,
	}

	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}

	property.TransactionType = TransactionType(transactionType)
	property.Currency = Currency(currency)
	if propertyType != nil {
		value := PropertyType(*propertyType)
		property.PropertyType = &value
	}
	if property.Images == nil {
		property.Images = []string{}
	}

	return &property, nil
}

// classifyWriteError maps slug collisions to [ErrSlugTaken] and wraps the rest.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsUniqueViolation(err, schema.CoreProperty.SlugConstraint) {
		return ErrSlugTaken
	}
	return dberr.Wrap(err, resourceName)
}
