package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk/internal/handler/dto"
	"github.com/partsdesk/partsdesk/internal/service"
)

// ContactHandler handles HTTP requests for contact-support tickets.
type ContactHandler struct {
	*Handler
	svc *service.ContactService
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(base *Handler, svc *service.ContactService) *ContactHandler {
	return &ContactHandler{Handler: base, svc: svc}
}

// Submit handles POST /api/contact-support.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body",
			dto.FieldError{Code: "INVALID_JSON"})
		return
	}

	if errs := dto.Validate(req); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	ticket, err := h.svc.Submit(r.Context(), service.SubmitContactInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Company:     req.Company,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		OrderNumber: req.OrderNumber,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("contact_request_submitted",
		slog.String("reference_id", ticket.ReferenceID),
	)

	writeData(w, http.StatusOK, ticket)
}

// List handles GET /api/contact-support.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page := parseSubmissionFilter(r)

	tickets, total, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeList(w, tickets, dto.NewPagination(page.Number, page.Limit, total))
}

// Get handles GET /api/contact-support/{referenceID}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	ticket, err := h.svc.Get(r.Context(), referenceID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, ticket)
}

// UpdateStatus handles PATCH /api/contact-support/{referenceID}.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	ticket, err := h.svc.UpdateStatus(r.Context(), referenceID, req.Status)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("contact_status_updated",
		slog.String("reference_id", ticket.ReferenceID),
		slog.String("status", string(ticket.Status)),
	)

	writeData(w, http.StatusOK, ticket)
}
