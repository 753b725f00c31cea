package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk/internal/handler/dto"
	"github.com/partsdesk/partsdesk/internal/service"
)

// SuggestionHandler handles HTTP requests for part suggestion operations.
type SuggestionHandler struct {
	*Handler
	svc *service.SuggestionService
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(base *Handler, svc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{Handler: base, svc: svc}
}

// Submit handles POST /api/suggestions.
func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitSuggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body",
			dto.FieldError{Code: "INVALID_JSON"})
		return
	}

	if errs := dto.Validate(req); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	suggestion, err := h.svc.Submit(r.Context(), service.SubmitSuggestionInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		Phone:        req.Phone,
		PartName:     req.PartName,
		Manufacturer: req.Manufacturer,
		PartNumber:   req.PartNumber,
		Category:     req.Category,
		Description:  req.Description,
		Reason:       req.Reason,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("suggestion_submitted",
		slog.String("reference_id", suggestion.ReferenceID),
		slog.String("part_name", suggestion.PartName),
	)

	writeData(w, http.StatusOK, suggestion)
}

// List handles GET /api/suggestions.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page := parseSubmissionFilter(r)

	suggestions, total, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeList(w, suggestions, dto.NewPagination(page.Number, page.Limit, total))
}

// Get handles GET /api/suggestions/{referenceID}.
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	suggestion, err := h.svc.Get(r.Context(), referenceID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, suggestion)
}

// UpdateStatus handles PATCH /api/suggestions/{referenceID}.
func (h *SuggestionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body",
			dto.FieldError{Code: "INVALID_JSON"})
		return
	}

	if errs := dto.Validate(req); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	suggestion, err := h.svc.UpdateStatus(r.Context(), referenceID, req.Status)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("suggestion_status_updated",
		slog.String("reference_id", suggestion.ReferenceID),
		slog.String("status", string(suggestion.Status)),
	)

	writeData(w, http.StatusOK, suggestion)
}
