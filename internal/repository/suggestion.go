package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/partsdesk/partsdesk/internal/model"
)

const suggestionColumns = `s.id, s.reference_id, s.user_id, s.part_name, s.manufacturer,
	s.part_number, s.category, s.description, s.reason, s.status, s.created_at, s.updated_at`

// CreateSuggestion inserts a new suggestion row inside the submission transaction.
func CreateSuggestion(ctx context.Context, tx pgx.Tx, s *model.Suggestion) error {
	query := `
		INSERT INTO suggestions (id, reference_id, user_id, part_name, manufacturer,
			part_number, category, description, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`

	now := time.Now().UTC()
	_, err := tx.Exec(ctx, query,
		s.ID,
		s.ReferenceID,
		s.UserID,
		s.PartName,
		s.Manufacturer,
		s.PartNumber,
		s.Category,
		s.Description,
		s.Reason,
		s.Status,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrReferenceExists
		}
		return fmt.Errorf("failed to create suggestion: %w", err)
	}

	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

// GetSuggestionByReference retrieves a suggestion by its reference id.
func (r *Repository) GetSuggestionByReference(ctx context.Context, referenceID string) (*model.Suggestion, error) {
	query := fmt.Sprintf(`SELECT %s FROM suggestions s WHERE s.reference_id = $1`, suggestionColumns)

	s, err := scanSuggestion(r.pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}

	return s, nil
}

// ListSuggestions retrieves a page of suggestions matching the filter
// plus the total match count.
func (r *Repository) ListSuggestions(ctx context.Context, f SubmissionFilter, page Page) ([]*model.Suggestion, int64, error) {
	b := NewFilter().
		Equal("s.status", f.Status).
		Equal("u.email", f.Email).
		After("s.created_at", f.CreatedAfter).
		Before("s.created_at", f.CreatedBefore)

	where := b.Where()
	countArgs := b.Args()

	query := fmt.Sprintf(
		"SELECT %s FROM suggestions s JOIN users u ON u.id = s.user_id %s %s %s",
		suggestionColumns, where, b.OrderBy("", "s.created_at DESC"), b.Paginate(page),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []*model.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating suggestions: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM suggestions s JOIN users u ON u.id = s.user_id " + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count suggestions: %w", err)
	}

	return suggestions, total, nil
}

// UpdateSuggestionStatus sets a new status on a suggestion.
func (r *Repository) UpdateSuggestionStatus(ctx context.Context, referenceID string, status model.SuggestionStatus) (*model.Suggestion, error) {
	query := fmt.Sprintf(`
		UPDATE suggestions s
		SET status = $2, updated_at = NOW()
		WHERE s.reference_id = $1
		RETURNING %s
	`, suggestionColumns)

	s, err := scanSuggestion(r.pool.QueryRow(ctx, query, referenceID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("failed to update suggestion status: %w", err)
	}

	return s, nil
}

// scanSuggestion scans a single row into a Suggestion model.
func scanSuggestion(row pgx.Row) (*model.Suggestion, error) {
	var s model.Suggestion
	err := row.Scan(
		&s.ID,
		&s.ReferenceID,
		&s.UserID,
		&s.PartName,
		&s.Manufacturer,
		&s.PartNumber,
		&s.Category,
		&s.Description,
		&s.Reason,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return &s, err
}
