package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/partsdesk/partsdesk/internal/model"
)

const contactColumns = `c.id, c.reference_id, c.user_id, c.subject, c.message,
	c.order_number, c.status, c.created_at, c.updated_at`

// CreateContactRequest inserts a new support ticket inside the submission transaction.
func CreateContactRequest(ctx context.Context, tx pgx.Tx, c *model.ContactRequest) error {
	query := `
		INSERT INTO contact_requests (id, reference_id, user_id, subject, message,
			order_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	now := time.Now().UTC()
	_, err := tx.Exec(ctx, query,
		c.ID,
		c.ReferenceID,
		c.UserID,
		c.Subject,
		c.Message,
		c.OrderNumber,
		c.Status,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrReferenceExists
		}
		return fmt.Errorf("failed to create contact request: %w", err)
	}

	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// GetContactByReference retrieves a support ticket by its reference id.
func (r *Repository) GetContactByReference(ctx context.Context, referenceID string) (*model.ContactRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM contact_requests c WHERE c.reference_id = $1`, contactColumns)

	c, err := scanContact(r.pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact request: %w", err)
	}

	return c, nil
}

// ListContacts retrieves a page of support tickets matching the filter
// plus the total match count.
func (r *Repository) ListContacts(ctx context.Context, f SubmissionFilter, page Page) ([]*model.ContactRequest, int64, error) {
	b := NewFilter().
		Equal("c.status", f.Status).
		Equal("u.email", f.Email).
		After("c.created_at", f.CreatedAfter).
		Before("c.created_at", f.CreatedBefore)

	where := b.Where()
	countArgs := b.Args()

	query := fmt.Sprintf(
		"SELECT %s FROM contact_requests c JOIN users u ON u.id = c.user_id %s %s %s",
		contactColumns, where, b.OrderBy("", "c.created_at DESC"), b.Paginate(page),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact requests: %w", err)
	}
	defer rows.Close()

	var contacts []*model.ContactRequest
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact request: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating contact requests: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM contact_requests c JOIN users u ON u.id = c.user_id " + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact requests: %w", err)
	}

	return contacts, total, nil
}

// UpdateContactStatus sets a new status on a support ticket.
func (r *Repository) UpdateContactStatus(ctx context.Context, referenceID string, status model.ContactStatus) (*model.ContactRequest, error) {
	query := fmt.Sprintf(`
		UPDATE contact_requests c
		SET status = $2, updated_at = NOW()
		WHERE c.reference_id = $1
		RETURNING %s
	`, contactColumns)

	c, err := scanContact(r.pool.QueryRow(ctx, query, referenceID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to update contact status: %w", err)
	}

	return c, nil
}

// scanContact scans a single row into a ContactRequest model.
func scanContact(row pgx.Row) (*model.ContactRequest, error) {
	var c model.ContactRequest
	err := row.Scan(
		&c.ID,
		&c.ReferenceID,
		&c.UserID,
		&c.Subject,
		&c.Message,
		&c.OrderNumber,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return &c, err
}
