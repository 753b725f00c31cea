// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/partsdesk/partsdesk/internal/handler/dto"
	"github.com/partsdesk/partsdesk/internal/middleware"
	"github.com/partsdesk/partsdesk/internal/repository"
	"github.com/partsdesk/partsdesk/internal/service"
)

// Handler carries dependencies shared by all route handlers.
type Handler struct {
	logger     *slog.Logger
	production bool
}

// New creates a Handler.
func New(logger *slog.Logger, production bool) *Handler {
	return &Handler{logger: logger, production: production}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.Response{
		Success: false,
		Message: "Resource not found",
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.Response{
		Success: false,
		Message: "Method not allowed",
	})
}

// writeJSON writes a JSON envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, resp dto.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dto.Response{Success: true, Data: data})
}

// writeList writes a success envelope with pagination metadata.
func writeList(w http.ResponseWriter, data any, p *dto.Pagination) {
	writeJSON(w, http.StatusOK, dto.Response{Success: true, Data: data, Pagination: p})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string, errs ...dto.FieldError) {
	writeJSON(w, status, dto.Response{Success: false, Message: message, Errors: errs})
}

// handleServiceError maps service errors to HTTP responses. Unexpected
// errors are logged with full detail server-side; in production the
// client only sees a generic message.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status value",
			dto.FieldError{Field: "status", Code: "INVALID_STATUS", Message: "is not a valid status"})
	default:
		h.logger.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.Method+" "+r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)

		message := "Internal server error"
		if !h.production {
			message = err.Error()
		}
		writeError(w, http.StatusInternalServerError, message)
	}
}

// decodeJSON parses the request body into dest.
func decodeJSON(r *http.Request, dest any) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

// parseSubmissionFilter extracts the shared listing filters and
// pagination parameters from the query string.
func parseSubmissionFilter(r *http.Request) (repository.SubmissionFilter, repository.Page) {
	query := r.URL.Query()

	f := repository.SubmissionFilter{
		Status: query.Get("status"),
		Email:  query.Get("email"),
	}

	if after := query.Get("createdAfter"); after != "" {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			f.CreatedAfter = &t
		}
	}
	if before := query.Get("createdBefore"); before != "" {
		if t, err := time.Parse(time.RFC3339, before); err == nil {
			f.CreatedBefore = &t
		}
	}

	return f, parsePage(r)
}

// parsePage extracts clamped pagination parameters from the query string.
func parsePage(r *http.Request) repository.Page {
	query := r.URL.Query()

	page := 0
	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			page = parsed
		}
	}

	limit := 0
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	return repository.ClampPage(page, limit)
}
