package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/partsdesk/partsdesk/internal/model"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UpsertUser inserts a user keyed by email, or refreshes the name,
// company, and phone fields of an existing row. The id of the stored
// row (new or existing) is written back to u. Must run inside the
// submission transaction so the child insert can reference the id.
func UpsertUser(ctx context.Context, tx pgx.Tx, u *model.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, company, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (email) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name  = EXCLUDED.last_name,
		    company    = EXCLUDED.company,
		    phone      = EXCLUDED.phone,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	now := time.Now().UTC()
	err := tx.QueryRow(ctx, query,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.Company,
		u.Phone,
		now,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	u.UpdatedAt = now
	return nil
}

// GetUserByEmail retrieves a user by its natural key.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, first_name, last_name, company, phone, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Company,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}
