package handlers

import (
	"net/http"
	"strconv"

	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/services"
)

type AuditHandler struct {
	Svc *services.AuditService
}

func NewAuditHandler(svc *services.AuditService) *AuditHandler {
	return &AuditHandler{Svc: svc}
}

// List returns the newest audit entries, capped by the service.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Svc.Recent(limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "logs": logs})
}
