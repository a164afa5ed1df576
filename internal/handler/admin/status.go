package admin

import (
	"net/http"

	"github.com/northstack/leadgen/internal/handler"
	"github.com/northstack/leadgen/internal/service"
)

// StatusAdminHandler handles the cross-entity status update endpoint.
type StatusAdminHandler struct {
	subSvc *service.SubmissionService
}

// NewStatusAdminHandler creates a new StatusAdminHandler.
func NewStatusAdminHandler(subSvc *service.SubmissionService) *StatusAdminHandler {
	return &StatusAdminHandler{subSvc: subSvc}
}

// UpdateStatus handles PATCH and PUT /api-admin/status. The target table
// comes from the body and is validated against the closed allow-list
// before any query text exists.
func (h *StatusAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Table  string `json:"table"`
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondJSON(w, http.StatusBadRequest, handler.Envelope{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	row, err := h.subSvc.UpdateStatus(r.Context(), input.Table, input.ID, input.Status)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, row)
}
