package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk/internal/handler/dto"
	"github.com/partsdesk/partsdesk/internal/service"
)

// QuoteHandler handles HTTP requests for quote operations.
type QuoteHandler struct {
	*Handler
	svc *service.QuoteService
}

// NewQuoteHandler creates a QuoteHandler.
func NewQuoteHandler(base *Handler, svc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{Handler: base, svc: svc}
}

// Submit handles POST /api/quotes.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body",
			dto.FieldError{Code: "INVALID_JSON"})
		return
	}

	if errs := dto.Validate(req); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	quote, err := h.svc.Submit(r.Context(), service.SubmitQuoteInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		Phone:        req.Phone,
		PartType:     req.PartType,
		PartNumber:   req.PartNumber,
		Quantity:     req.Quantity,
		Urgency:      req.Urgency,
		Description:  req.Description,
		EmailUpdates: req.EmailUpdates,
		Newsletter:   req.Newsletter,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("quote_submitted",
		slog.String("reference_id", quote.ReferenceID),
		slog.String("part_type", quote.PartType),
	)

	writeData(w, http.StatusOK, quote)
}

// List handles GET /api/quotes.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page := parseSubmissionFilter(r)

	quotes, total, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeList(w, quotes, dto.NewPagination(page.Number, page.Limit, total))
}

// Get handles GET /api/quotes/{referenceID}.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	quote, err := h.svc.Get(r.Context(), referenceID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, quote)
}

// UpdateStatus handles PATCH /api/quotes/{referenceID}.
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	quote, err := h.svc.UpdateStatus(r.Context(), referenceID, req.Status)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("quote_status_updated",
		slog.String("reference_id", quote.ReferenceID),
		slog.String("status", string(quote.Status)),
	)

	writeData(w, http.StatusOK, quote)
}
