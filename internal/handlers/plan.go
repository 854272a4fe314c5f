package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/services"
	"github.com/gymportal/gym-portal/validation"
)

type PlanHandler struct {
	Svc   *services.PlanService
	Audit *services.AuditService
}

func NewPlanHandler(svc *services.PlanService, audit *services.AuditService) *PlanHandler {
	return &PlanHandler{Svc: svc, Audit: audit}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "plans": plans})
}

type planRequest struct {
	PlanName       string  `json:"plan_name"`
	DurationMonths int     `json:"duration_months"`
	Price          float64 `json:"price"`
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("plan_name", req.PlanName, v)
	validation.PositiveInt("duration_months", req.DurationMonths, v)
	validation.PositiveFloat("price", req.Price, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	plan, err := h.Svc.Create(req.PlanName, req.DurationMonths, req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("create", "plan", plan.ID,
		fmt.Sprintf("Created plan %q (%d months, price %.2f)", plan.PlanName, plan.DurationMonths, plan.Price),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "plan": plan})
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "invalid plan id", nil)
		return
	}
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("plan_name", req.PlanName, v)
	validation.PositiveInt("duration_months", req.DurationMonths, v)
	validation.PositiveFloat("price", req.Price, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	plan, err := h.Svc.Update(uint(id), req.PlanName, req.DurationMonths, req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("update", "plan", plan.ID,
		fmt.Sprintf("Updated plan %q (%d months, price %.2f)", plan.PlanName, plan.DurationMonths, plan.Price),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "plan": plan})
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "invalid plan id", nil)
		return
	}
	plan, err := h.Svc.Delete(uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("delete", "plan", plan.ID,
		fmt.Sprintf("Deleted plan %q", plan.PlanName),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Plan deleted successfully"})
}
