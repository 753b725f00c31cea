package repository

import (
	"fmt"
	"strings"
	"time"
)

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page represents clamped pagination parameters.
type Page struct {
	Number int
	Limit  int
}

// ClampPage normalizes raw pagination inputs: limit is clamped to
// [1, MaxPageSize] (zero falls back to the default), page floors at 1.
func ClampPage(number, limit int) Page {
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the row offset for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// FilterBuilder accumulates optional WHERE conditions with sequential
// positional placeholders and a parallel argument list. Placeholder
// indices are assigned in evaluation order starting at 1 and are never
// reused or skipped, so the clause string and argument slice stay
// positionally consistent for any subset of active filters.
//
// The builder is stateless with respect to the datastore: the same
// inputs always produce byte-identical output.
type FilterBuilder struct {
	conds  []string
	args   []any
	next   int
	ranked string // full-text query text, set by FullText
}

// NewFilter creates a builder whose first placeholder is $1.
func NewFilter() *FilterBuilder {
	return &FilterBuilder{next: 1}
}

// Equal adds an equality condition when value is non-empty.
func (b *FilterBuilder) Equal(column, value string) *FilterBuilder {
	if value == "" {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
	return b
}

// Contains adds a case-insensitive substring condition when value is non-empty.
func (b *FilterBuilder) Contains(column, value string) *FilterBuilder {
	if value == "" {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s ILIKE $%d", column, b.next))
	b.args = append(b.args, "%"+value+"%")
	b.next++
	return b
}

// FullText adds a tokenized match against a precomputed tsvector column.
// The query text is always bound as a parameter, never interpolated.
func (b *FilterBuilder) FullText(column, query string) *FilterBuilder {
	if query == "" {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s @@ websearch_to_tsquery('english', $%d)", column, b.next))
	b.args = append(b.args, query)
	b.next++
	b.ranked = query
	return b
}

// Bool adds a boolean condition when value is set.
func (b *FilterBuilder) Bool(column string, value *bool) *FilterBuilder {
	if value == nil {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, b.next))
	b.args = append(b.args, *value)
	b.next++
	return b
}

// Min adds a lower-bound numeric condition when value is set.
func (b *FilterBuilder) Min(column string, value *float64) *FilterBuilder {
	if value == nil {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s >= $%d", column, b.next))
	b.args = append(b.args, *value)
	b.next++
	return b
}

// Max adds an upper-bound numeric condition when value is set.
func (b *FilterBuilder) Max(column string, value *float64) *FilterBuilder {
	if value == nil {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s <= $%d", column, b.next))
	b.args = append(b.args, *value)
	b.next++
	return b
}

// After adds a created-on-or-after condition when value is set.
func (b *FilterBuilder) After(column string, value *time.Time) *FilterBuilder {
	if value == nil {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s >= $%d", column, b.next))
	b.args = append(b.args, *value)
	b.next++
	return b
}

// Before adds a created-on-or-before condition when value is set.
func (b *FilterBuilder) Before(column string, value *time.Time) *FilterBuilder {
	if value == nil {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s <= $%d", column, b.next))
	b.args = append(b.args, *value)
	b.next++
	return b
}

// Where returns the assembled WHERE clause, or the empty string when no
// filter contributed a condition.
func (b *FilterBuilder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns a copy of the bound argument list accumulated so far.
// Call it before OrderBy/Paginate to snapshot the argument set for the
// parallel COUNT query, which must use the identical WHERE clause.
func (b *FilterBuilder) Args() []any {
	out := make([]any, len(b.args))
	copy(out, b.args)
	return out
}

// OrderBy returns the ORDER BY expression. When a full-text filter is
// active the result is ranked by relevance first, falling back to the
// given recency ordering; the ranking query text is bound through a
// fresh placeholder rather than interpolated. Call after all filters
// and before Paginate.
func (b *FilterBuilder) OrderBy(rankColumn, fallback string) string {
	if b.ranked == "" {
		return "ORDER BY " + fallback
	}
	expr := fmt.Sprintf(
		"ORDER BY ts_rank(%s, websearch_to_tsquery('english', $%d)) DESC, %s",
		rankColumn, b.next, fallback,
	)
	b.args = append(b.args, b.ranked)
	b.next++
	return expr
}

// Paginate returns the LIMIT/OFFSET clause with bound parameters. Call last.
func (b *FilterBuilder) Paginate(p Page) string {
	clause := fmt.Sprintf("LIMIT $%d OFFSET $%d", b.next, b.next+1)
	b.args = append(b.args, p.Limit, p.Offset())
	b.next += 2
	return clause
}
