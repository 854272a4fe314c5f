package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/internal/models"
	"github.com/gymportal/gym-portal/internal/services"
)

func TestStaffAddListDelete(t *testing.T) {
	db := setupTestDB(t)
	admin, err := services.NewSetupService(db).CreateAdmin("Owner", "owner@gym.test", "supersecret")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	h := NewStaffHandler(services.NewStaffService(db), services.NewAuditService(db))

	req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(`{"name":"Front Desk","email":"desk@gym.test"}`))
	req = req.WithContext(auth.WithUser(req.Context(), admin.ID, admin.Role))
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Staff        models.User `json:"staff"`
		TempPassword string      `json:"temp_password"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Staff.Role != models.RoleReception {
		t.Fatalf("expected reception role, got %s", created.Staff.Role)
	}
	if len(created.TempPassword) < 12 {
		t.Fatalf("temp password too short: %q", created.TempPassword)
	}

	w2 := httptest.NewRecorder()
	h.List(w2, httptest.NewRequest(http.MethodGet, "/api/staff", nil))
	var listed struct {
		Staff []models.User `json:"staff"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Staff) != 2 {
		t.Fatalf("expected admin + reception, got %d", len(listed.Staff))
	}

	req3 := httptest.NewRequest(http.MethodDelete, "/api/staff/2", nil)
	req3.SetPathValue("id", "2")
	req3 = req3.WithContext(auth.WithUser(req3.Context(), admin.ID, admin.Role))
	w3 := httptest.NewRecorder()
	h.Delete(w3, req3)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w3.Code, w3.Body.String())
	}
}

func TestStaffDeleteSelfRejected(t *testing.T) {
	db := setupTestDB(t)
	admin, err := services.NewSetupService(db).CreateAdmin("Owner", "owner@gym.test", "supersecret")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	h := NewStaffHandler(services.NewStaffService(db), services.NewAuditService(db))

	req := httptest.NewRequest(http.MethodDelete, "/api/staff/1", nil)
	req.SetPathValue("id", "1")
	req = req.WithContext(auth.WithUser(req.Context(), admin.ID, admin.Role))
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestStaffAddInvalidEmail(t *testing.T) {
	db := setupTestDB(t)
	h := NewStaffHandler(services.NewStaffService(db), services.NewAuditService(db))

	req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(`{"name":"X","email":"not-an-email"}`))
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
