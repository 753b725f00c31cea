package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk/internal/handler/dto"
	"github.com/partsdesk/partsdesk/internal/repository"
	"github.com/partsdesk/partsdesk/internal/service"
)

// PartHandler handles HTTP requests for the parts catalog.
type PartHandler struct {
	*Handler
	svc *service.PartService
}

// NewPartHandler creates a PartHandler.
func NewPartHandler(base *Handler, svc *service.PartService) *PartHandler {
	return &PartHandler{Handler: base, svc: svc}
}

// List handles GET /api/parts.
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parsePartFilter(r)
	page := parsePage(r)

	parts, total, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeList(w, parts, dto.NewPagination(page.Number, page.Limit, total))
}

// Featured handles GET /api/parts/featured.
func (h *PartHandler) Featured(w http.ResponseWriter, r *http.Request) {
	parts, err := h.svc.Featured(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, parts)
}

// Get handles GET /api/parts/{identifier}.
func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	part, err := h.svc.Get(r.Context(), identifier)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, part)
}

// Categories handles GET /api/parts/meta/categories.
func (h *PartHandler) Categories(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.Categories(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, values)
}

// Manufacturers handles GET /api/parts/meta/manufacturers.
func (h *PartHandler) Manufacturers(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.Manufacturers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, values)
}

// parsePartFilter extracts catalog search filters from the query string.
// Malformed numeric and boolean values are ignored rather than rejected.
func parsePartFilter(r *http.Request) repository.PartFilter {
	query := r.URL.Query()

	f := repository.PartFilter{
		Query:        query.Get("q"),
		Category:     query.Get("category"),
		Manufacturer: query.Get("manufacturer"),
	}

	if v := query.Get("inStock"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			f.InStock = &parsed
		}
	}
	if v := query.Get("minPrice"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			f.MinPrice = &parsed
		}
	}
	if v := query.Get("maxPrice"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			f.MaxPrice = &parsed
		}
	}

	return f
}
