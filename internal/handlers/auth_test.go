package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/internal/services"
)

func TestLoginSetsSessionCookie(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.NewSetupService(db).CreateAdmin("Owner", "owner@gym.test", "supersecret"); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	h := NewAuthHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"owner@gym.test","password":"supersecret"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "gym_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie to be set")
	}
	// Password hash must never appear in the response.
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked in response: %s", w.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.NewSetupService(db).CreateAdmin("Owner", "owner@gym.test", "supersecret"); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	h := NewAuthHandler(db)

	for _, body := range []string{
		`{"email":"owner@gym.test","password":"wrong"}`,
		`{"email":"nobody@gym.test","password":"supersecret"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Login(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", w.Code)
		}
		// Unknown email and wrong password are indistinguishable.
		if !strings.Contains(w.Body.String(), "Invalid email or password") {
			t.Fatalf("unexpected message: %s", w.Body.String())
		}
	}
}

func TestSessionEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.NewSetupService(db).CreateAdmin("Owner", "owner@gym.test", "supersecret")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	h := NewAuthHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req = req.WithContext(auth.WithUser(req.Context(), user.ID, user.Role))
	w := httptest.NewRecorder()
	h.Session(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "owner@gym.test") {
		t.Fatalf("expected user in body: %s", w.Body.String())
	}

	// Anonymous request is a 401.
	w2 := httptest.NewRecorder()
	h.Session(w2, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w2.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "gym_session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected cleared session cookie")
	}
}
