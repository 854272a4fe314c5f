package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/services"
	"github.com/gymportal/gym-portal/validation"
)

type StaffHandler struct {
	Svc   *services.StaffService
	Audit *services.AuditService
}

func NewStaffHandler(svc *services.StaffService, audit *services.AuditService) *StaffHandler {
	return &StaffHandler{Svc: svc, Audit: audit}
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "staff": users})
}

type addStaffRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Add creates a reception account with a generated temporary password. The
// password is returned once in the response and never stored in clear.
func (h *StaffHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		v["email"] = "invalid_email"
	}
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	user, tempPassword, err := h.Svc.AddReception(req.Name, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("create", "user", user.ID,
		fmt.Sprintf("Added reception staff %q (%s)", user.Name, user.Email),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"staff":         user,
		"temp_password": tempPassword,
	})
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "invalid staff id", nil)
		return
	}
	actorID, _ := auth.UserIDFromContext(r.Context())
	user, err := h.Svc.DeleteReception(uint(id), actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("delete", "user", user.ID,
		fmt.Sprintf("Removed reception staff %q (%s)", user.Name, user.Email),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Staff member removed"})
}
