// Package dto defines request and response shapes for the HTTP API.
package dto

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Success    bool         `json:"success"`
	Data       any          `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	RetryAfter int          `json:"retryAfter,omitempty"`
}

// FieldError describes one validation or rejection detail.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// Pagination carries list metadata. Total comes from the parallel COUNT
// query, not from the truncated page.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes pagination metadata for a page of results.
func NewPagination(page, limit int, total int64) *Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
