package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gymportal/gym-portal/internal/models"
	"github.com/gymportal/gym-portal/internal/services"
)

func TestPlanCreateListDelete(t *testing.T) {
	db := setupTestDB(t)
	h := NewPlanHandler(services.NewPlanService(db), services.NewAuditService(db))

	req := httptest.NewRequest(http.MethodPost, "/api/membership-plans", strings.NewReader(`{"plan_name":"Quarterly","duration_months":3,"price":4000}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	w2 := httptest.NewRecorder()
	h.List(w2, httptest.NewRequest(http.MethodGet, "/api/membership-plans", nil))
	var payload struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Plans) != 1 || payload.Plans[0].PlanName != "Quarterly" {
		t.Fatalf("unexpected plans: %+v", payload.Plans)
	}

	req3 := httptest.NewRequest(http.MethodDelete, "/api/membership-plans/1", nil)
	req3.SetPathValue("id", "1")
	w3 := httptest.NewRecorder()
	h.Delete(w3, req3)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w3.Code, w3.Body.String())
	}
}

func TestPlanCreateDuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	h := NewPlanHandler(services.NewPlanService(db), services.NewAuditService(db))
	seedPlan(t, db, "Monthly", 1, 1500)

	req := httptest.NewRequest(http.MethodPost, "/api/membership-plans", strings.NewReader(`{"plan_name":"Monthly","duration_months":1,"price":1600}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPlanDeleteInUseConflict(t *testing.T) {
	db := setupTestDB(t)
	h := NewPlanHandler(services.NewPlanService(db), services.NewAuditService(db))
	seedRegistration(t, db)

	req := httptest.NewRequest(http.MethodDelete, "/api/membership-plans/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
	var count int64
	db.Model(&models.Plan{}).Count(&count)
	if count != 1 {
		t.Fatalf("plan should survive rejected delete, count=%d", count)
	}
}

func TestPlanUpdateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewPlanHandler(services.NewPlanService(db), services.NewAuditService(db))
	seedPlan(t, db, "Monthly", 1, 1500)

	req := httptest.NewRequest(http.MethodPut, "/api/membership-plans/1", strings.NewReader(`{"plan_name":"","duration_months":0,"price":-1}`))
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
