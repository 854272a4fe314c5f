package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/gate"
	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/handlers"
	"github.com/gymportal/gym-portal/internal/models"
	"github.com/gymportal/gym-portal/internal/services"
)

// newGate registers the authorization policies for every resource the API
// exposes. Member, plan and payment operations are open to all staff; staff
// management and the audit trail are admin only.
func newGate() *gate.Gate {
	g := gate.New()
	g.Register("member", gate.MinRole{Min: gate.RoleReception})
	g.Register("plan", gate.MinRole{Min: gate.RoleReception})
	g.Register("payment", gate.MinRole{Min: gate.RoleReception})
	g.Register("dashboard", gate.MinRole{Min: gate.RoleReception})
	g.Register("staff", gate.MinRole{Min: gate.RoleAdmin})
	g.Register("audit", gate.MinRole{Min: gate.RoleAdmin})
	return g
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// The session middleware resolves the cookie's user id against the users
	// table. The role attached to the context always comes from this lookup.
	auth.SetUserResolver(func(_ context.Context, uid uint) (string, bool) {
		var user models.User
		if err := db.Select("role").First(&user, uid).Error; err != nil {
			return "", false
		}
		return user.Role, true
	})

	g := newGate()

	// guard chains session verification with a gate check for one resource
	// and action.
	guard := func(resource string, action gate.Action, h http.HandlerFunc) http.Handler {
		return auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := gate.Role(auth.RoleFromContext(r.Context()))
			if err := g.Authorize(r.Context(), role, action, resource); err != nil {
				if errors.Is(err, gate.ErrUnauthenticated) {
					httpx.Error(w, http.StatusUnauthorized, "unauthorized", nil)
					return
				}
				httpx.Error(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			h(w, r)
		}))
	}

	// Health endpoints
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	auditSvc := services.NewAuditService(db)

	// First-run setup. Status and creation stay open: they must work before
	// any account exists, and CreateAdmin itself refuses a second admin.
	setupHandler := handlers.NewSetupHandler(services.NewSetupService(db), auditSvc)
	mux.HandleFunc("GET /api/setup", setupHandler.Status)
	mux.HandleFunc("POST /api/setup", setupHandler.Create)

	// Sessions
	authHandler := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/session", auth.Middleware(http.HandlerFunc(authHandler.Session)))

	// Members
	memberHandler := handlers.NewMemberHandler(db, services.NewRegistrationService(db), auditSvc)
	mux.Handle("GET /api/members", guard("member", gate.ActionList, memberHandler.List))
	mux.Handle("POST /api/members/register", guard("member", gate.ActionCreate, memberHandler.Register))
	mux.Handle("PATCH /api/members/{id}", guard("member", gate.ActionUpdate, memberHandler.Update))

	// Plans
	planHandler := handlers.NewPlanHandler(services.NewPlanService(db), auditSvc)
	mux.Handle("GET /api/membership-plans", guard("plan", gate.ActionList, planHandler.List))
	mux.Handle("POST /api/membership-plans", guard("plan", gate.ActionCreate, planHandler.Create))
	mux.Handle("PUT /api/membership-plans/{id}", guard("plan", gate.ActionUpdate, planHandler.Update))
	mux.Handle("DELETE /api/membership-plans/{id}", guard("plan", gate.ActionDelete, planHandler.Delete))

	// Payments
	paymentHandler := handlers.NewPaymentHandler(db, services.NewPaymentService(db), auditSvc)
	mux.Handle("GET /api/payments", guard("payment", gate.ActionList, paymentHandler.List))
	mux.Handle("POST /api/payments/add", guard("payment", gate.ActionCreate, paymentHandler.Add))
	mux.Handle("GET /api/payments/history", guard("payment", gate.ActionList, paymentHandler.History))
	mux.Handle("GET /api/payments/member-timeline", guard("payment", gate.ActionView, paymentHandler.MemberTimeline))
	mux.Handle("PUT /api/payments/{id}", guard("payment", gate.ActionUpdate, paymentHandler.Update))

	// Dashboard
	dashboardHandler := handlers.NewDashboardHandler(services.NewStatsService(db))
	mux.Handle("GET /api/dashboard/stats", guard("dashboard", gate.ActionView, dashboardHandler.Stats))

	// Staff management (admin only)
	staffHandler := handlers.NewStaffHandler(services.NewStaffService(db), auditSvc)
	mux.Handle("GET /api/staff", guard("staff", gate.ActionList, staffHandler.List))
	mux.Handle("POST /api/staff", guard("staff", gate.ActionCreate, staffHandler.Add))
	mux.Handle("DELETE /api/staff/{id}", guard("staff", gate.ActionDelete, staffHandler.Delete))

	// Audit trail (admin only)
	auditHandler := handlers.NewAuditHandler(auditSvc)
	mux.Handle("GET /api/audit-logs", guard("audit", gate.ActionList, auditHandler.List))

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.Error(w, http.StatusInternalServerError, "internal error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
