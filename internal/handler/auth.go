package handler

import (
	"net/http"

	"github.com/northstack/leadgen/internal/service"
)

// AuthHandler handles the admin login endpoint.
type AuthHandler struct {
	authSvc *service.AdminAuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api-admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, Envelope{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	meta := service.RequestMeta{
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	result, err := h.authSvc.Login(r.Context(), input, meta)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondSuccess(w, http.StatusOK, result)
}
