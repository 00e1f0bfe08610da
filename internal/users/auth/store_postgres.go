// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/database/schema"
	"github.com/setrini/inmobiliaria/internal/platform/dberr"
)

// # Admin Repository

// PostgresAdminRepository implements [AdminRepository] over users.admin.
type PostgresAdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a PostgreSQL implementation of [AdminRepository].
func NewAdminRepository(pool *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

/*
FindByEmail retrieves an account by its unique email.

Parameters:
  - context: context.Context
  - email: string (already lowercased)

Returns:
  - *Admin: Hydrated account
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAdminRepository) FindByEmail(context context.Context, email string) (*Admin, error) {
	return repository.findOne(context, schema.UserAdmin.Email, email)
}

// FindByID retrieves an account by primary key.
func (repository *PostgresAdminRepository) FindByID(context context.Context, id string) (*Admin, error) {
	return repository.findOne(context, schema.UserAdmin.ID, id)
}

// findOne selects a single account by a unique column.
func (repository *PostgresAdminRepository) findOne(context context.Context, column, value string) (*Admin, error) {
	table := schema.UserAdmin
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, column)

	admin := &Admin{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.DisplayName,
		&admin.Role,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Admin")
		}
		return nil, fmt.Errorf("postgres_admin_repo_find_failed: %w", err)
	}

	return admin, nil
}

/*
Create persists a new account.

Description: Timestamps come back from the database defaults.

Returns:
  - error: apperr.Conflict on a duplicate email, database errors otherwise
*/
func (repository *PostgresAdminRepository) Create(context context.Context, admin *Admin) error {
	table := schema.UserAdmin
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Email, table.Password, table.DisplayName, table.Role, table.IsActive,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.DisplayName,
		admin.Role,
		admin.IsActive,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, table.EmailConstraint) {
			return apperr.Conflict("An account with this email already exists")
		}
		return fmt.Errorf("postgres_admin_repo_create_failed: %w", err)
	}

	return nil
}

// TouchLastLogin stamps lastloginat on a successful login.
func (repository *PostgresAdminRepository) TouchLastLogin(context context.Context, id string, at time.Time) error {
	table := schema.UserAdmin
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, table.Table, table.LastLoginAt, table.ID)

	if _, err := repository.pool.Exec(context, query, id, at); err != nil {
		return fmt.Errorf("postgres_admin_repo_touch_failed: %w", err)
	}
	return nil
}
