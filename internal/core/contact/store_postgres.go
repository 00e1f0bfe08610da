// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/setrini/inmobiliaria/internal/platform/database/schema"
	"github.com/setrini/inmobiliaria/internal/platform/dberr"
)

const resourceName = "Contact message"

// messageRepository implements [Repository] using pgx.
type messageRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed enquiry store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &messageRepository{pool: pool}
}

// Create implements [Repository].
func (repository *messageRepository) Create(context context.Context, message *Message) error {
	table := schema.CoreContactMessage

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING %s`,
		table.Table,
		table.ID, table.Name, table.Email, table.Phone, table.Message, table.PropertyID, table.IPAddress,
		table.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		message.ID,
		message.Name,
		message.Email,
		message.Phone,
		message.Message,
		message.PropertyID,
		message.IPAddress,
	).Scan(&message.CreatedAt)

	return dberr.Wrap(err, resourceName)
}

// MarkNotified implements [Repository].
func (repository *messageRepository) MarkNotified(context context.Context, id string, at time.Time) error {
	table := schema.CoreContactMessage
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, table.Table, table.NotifiedAt, table.ID)

	_, err := repository.pool.Exec(context, query, id, at)
	return dberr.Wrap(err, resourceName)
}

// List implements [Repository]. The listing title is joined in for the inbox view.
func (repository *messageRepository) List(context context.Context, limit, offset int) ([]*Message, int, error) {
	table := schema.CoreContactMessage
	listing := schema.CoreProperty

	columns := make([]string, 0, len(table.Columns()))
	for _, column := range table.Columns() {
		columns = append(columns, "m."+column)
	}

	query := fmt.Sprintf(`SELECT %s, COALESCE(p.%s, ''), COUNT(*) OVER() AS total_count
		FROM %s m
		LEFT JOIN %s p ON p.%s = m.%s
		ORDER BY m.%s DESC, m.%s DESC
		LIMIT $1 OFFSET $2`,
		strings.Join(columns, ", "), listing.Title,
		table.Table,
		listing.Table, listing.ID, table.PropertyID,
		table.CreatedAt, table.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	var total int
	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Message, error) {
		var (
			message   Message
			ipAddress *string
		)
		err := row.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Phone,
			&message.Message,
			&message.PropertyID,
			&ipAddress,
			&message.NotifiedAt,
			&message.CreatedAt,
			&message.PropertyTitle,
			&total,
		)
		if ipAddress != nil {
			message.IPAddress = *ipAddress
		}
		return &message, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	// A page past the end carries no window count
	if len(messages) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table.Table)
		if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
	}

	return messages, total, nil
}
