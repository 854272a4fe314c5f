package handlers

import (
	"net/http"
	"time"

	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/services"
)

type DashboardHandler struct {
	Svc *services.StatsService
}

func NewDashboardHandler(svc *services.StatsService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Stats returns the aggregated dashboard figures in a single response.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Dashboard(time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}
