package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/partsdesk/partsdesk/internal/model"
)

// Common errors for submission repository operations.
var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrContactNotFound    = errors.New("contact request not found")
	ErrReferenceExists    = errors.New("reference id already exists")
)

// SubmissionFilter defines the optional filters shared by the
// submission listing endpoints.
type SubmissionFilter struct {
	Status        string
	Email         string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

const quoteColumns = `q.id, q.reference_id, q.user_id, q.part_type, q.part_number, q.quantity,
	q.urgency, q.description, q.email_updates, q.newsletter, q.status, q.created_at, q.updated_at`

// CreateQuote inserts a new quote row. Must run in the same transaction
// as the user upsert so the foreign key is satisfied atomically.
func CreateQuote(ctx context.Context, tx pgx.Tx, q *model.Quote) error {
	query := `
		INSERT INTO quotes (id, reference_id, user_id, part_type, part_number, quantity,
			urgency, description, email_updates, newsletter, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	`

	now := time.Now().UTC()
	_, err := tx.Exec(ctx, query,
		q.ID,
		q.ReferenceID,
		q.UserID,
		q.PartType,
		q.PartNumber,
		q.Quantity,
		q.Urgency,
		q.Description,
		q.EmailUpdates,
		q.Newsletter,
		q.Status,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrReferenceExists
		}
		return fmt.Errorf("failed to create quote: %w", err)
	}

	q.CreatedAt = now
	q.UpdatedAt = now
	return nil
}

// GetQuoteByReference retrieves a quote by its human-readable reference id.
func (r *Repository) GetQuoteByReference(ctx context.Context, referenceID string) (*model.Quote, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotes q WHERE q.reference_id = $1`, quoteColumns)

	q, err := scanQuote(r.pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return q, nil
}

// ListQuotes retrieves a page of quotes matching the filter plus the
// total match count. The COUNT query reuses the identical WHERE clause
// and argument order, since LIMIT truncates the page itself.
func (r *Repository) ListQuotes(ctx context.Context, f SubmissionFilter, page Page) ([]*model.Quote, int64, error) {
	b := NewFilter().
		Equal("q.status", f.Status).
		Equal("u.email", f.Email).
		After("q.created_at", f.CreatedAfter).
		Before("q.created_at", f.CreatedBefore)

	where := b.Where()
	countArgs := b.Args()

	query := fmt.Sprintf(
		"SELECT %s FROM quotes q JOIN users u ON u.id = q.user_id %s %s %s",
		quoteColumns, where, b.OrderBy("", "q.created_at DESC"), b.Paginate(page),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*model.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating quotes: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM quotes q JOIN users u ON u.id = q.user_id " + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	return quotes, total, nil
}

// UpdateQuoteStatus sets a new status on a quote. Status membership is
// validated at the service boundary.
func (r *Repository) UpdateQuoteStatus(ctx context.Context, referenceID string, status model.QuoteStatus) (*model.Quote, error) {
	query := fmt.Sprintf(`
		UPDATE quotes q
		SET status = $2, updated_at = NOW()
		WHERE q.reference_id = $1
		RETURNING %s
	`, quoteColumns)

	q, err := scanQuote(r.pool.QueryRow(ctx, query, referenceID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	return q, nil
}

// scanQuote scans a single row into a Quote model.
func scanQuote(row pgx.Row) (*model.Quote, error) {
	var q model.Quote
	err := row.Scan(
		&q.ID,
		&q.ReferenceID,
		&q.UserID,
		&q.PartType,
		&q.PartNumber,
		&q.Quantity,
		&q.Urgency,
		&q.Description,
		&q.EmailUpdates,
		&q.Newsletter,
		&q.Status,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	return &q, err
}
