package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/partsdesk/partsdesk/internal/handler/dto"
	"github.com/partsdesk/partsdesk/internal/middleware"
	"github.com/partsdesk/partsdesk/internal/service"
)

// AdminHandler handles operator login and token verification.
type AdminHandler struct {
	*Handler
	svc *service.AdminService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(base *Handler, svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Handler: base, svc: svc}
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body",
			dto.FieldError{Code: "INVALID_JSON"})
		return
	}

	if errs := dto.Validate(req); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			h.logger.Warn("admin_login_rejected")
			writeError(w, http.StatusUnauthorized, "Invalid email or password",
				dto.FieldError{Code: "INVALID_CREDENTIALS"})
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("admin_login", slog.String("email", req.Email))

	writeData(w, http.StatusOK, loginResponse{Token: token, Email: req.Email, Role: "admin"})
}

// Verify handles GET /api/admin/verify. The bearer token has already
// been validated by the admin middleware; this just echoes the claims.
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAdminClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required",
			dto.FieldError{Code: "MISSING_TOKEN"})
		return
	}

	writeData(w, http.StatusOK, map[string]string{
		"email": claims.Email,
		"role":  claims.Role,
	})
}
