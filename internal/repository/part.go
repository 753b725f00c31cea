package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/partsdesk/partsdesk/internal/model"
)

// ErrPartNotFound is returned when no part matches the lookup.
var ErrPartNotFound = errors.New("part not found")

// PartFilter defines the optional filters for catalog listing.
type PartFilter struct {
	Query        string // full-text search against the precomputed search document
	Category     string
	Manufacturer string
	InStock      *bool
	MinPrice     *float64
	MaxPrice     *float64
}

const partColumns = `p.id, p.part_number, p.name, p.description, p.category, p.manufacturer,
	p.price, p.stock_quantity, p.featured, p.compatibility, p.created_at, p.updated_at`

// ListParts retrieves a page of catalog parts matching the filter plus
// the total match count. Full-text matches rank by relevance before
// falling back to recency.
func (r *Repository) ListParts(ctx context.Context, f PartFilter, page Page) ([]*model.Part, int64, error) {
	b := NewFilter().
		FullText("p.search_doc", f.Query).
		Equal("p.category", f.Category).
		Equal("p.manufacturer", f.Manufacturer).
		Min("p.price", f.MinPrice).
		Max("p.price", f.MaxPrice)

	if f.InStock != nil && *f.InStock {
		b.Min("p.stock_quantity", ptr(1.0))
	}

	where := b.Where()
	countArgs := b.Args()

	query := fmt.Sprintf(
		"SELECT %s FROM parts p %s %s %s",
		partColumns, where, b.OrderBy("p.search_doc", "p.created_at DESC"), b.Paginate(page),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	var parts []*model.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating parts: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM parts p " + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parts: %w", err)
	}

	return parts, total, nil
}

// GetPartByIdentifier retrieves a part by part number.
func (r *Repository) GetPartByIdentifier(ctx context.Context, identifier string) (*model.Part, error) {
	query := fmt.Sprintf(`SELECT %s FROM parts p WHERE p.part_number = $1`, partColumns)

	p, err := scanPart(r.pool.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPartNotFound
		}
		return nil, fmt.Errorf("failed to get part: %w", err)
	}

	return p, nil
}

// FeaturedParts retrieves up to limit featured catalog parts.
func (r *Repository) FeaturedParts(ctx context.Context, limit int) ([]*model.Part, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM parts p
		WHERE p.featured = TRUE
		ORDER BY p.updated_at DESC
		LIMIT $1
	`, partColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured parts: %w", err)
	}
	defer rows.Close()

	var parts []*model.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}

	return parts, nil
}

// Categories lists the distinct part categories in the catalog.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	return r.distinctPartColumn(ctx, "category")
}

// Manufacturers lists the distinct manufacturers in the catalog.
func (r *Repository) Manufacturers(ctx context.Context) ([]string, error) {
	return r.distinctPartColumn(ctx, "manufacturer")
}

// distinctPartColumn returns the sorted distinct values of a fixed
// catalog column. The column name comes from a compile-time constant,
// never from request input.
func (r *Repository) distinctPartColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM parts WHERE %s <> '' ORDER BY %s`, column, column, column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list part %s values: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s values: %w", column, err)
	}

	return values, nil
}

// scanPart scans a single row into a Part model.
func scanPart(row pgx.Row) (*model.Part, error) {
	var p model.Part
	err := row.Scan(
		&p.ID,
		&p.PartNumber,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Manufacturer,
		&p.Price,
		&p.StockQuantity,
		&p.Featured,
		pq.Array(&p.Compatibility),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return &p, err
}

func ptr[T any](v T) *T {
	return &v
}
