package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/services"
	"github.com/gymportal/gym-portal/validation"
)

type SetupHandler struct {
	Svc   *services.SetupService
	Audit *services.AuditService
}

func NewSetupHandler(svc *services.SetupService, audit *services.AuditService) *SetupHandler {
	return &SetupHandler{Svc: svc, Audit: audit}
}

// Status reports whether first-run setup is still needed. Unauthenticated on
// purpose: it has to work before the first admin exists.
func (h *SetupHandler) Status(w http.ResponseWriter, r *http.Request) {
	exists, err := h.Svc.AdminExists()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"adminExists": exists,
		"needsSetup":  !exists,
	})
}

type setupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create provisions the one and only initial admin account.
func (h *SetupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
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
	if len(req.Password) < 8 {
		v["password"] = "min_length_8"
	}
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	user, err := h.Svc.CreateAdmin(req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("create", "user", user.ID, "Initial admin account created", user.Role)
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Admin account created successfully",
		"user":    user,
	})
}
