package handlers

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
	"github.com/gymportal/gym-portal/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Member{}, &models.MedicalInfo{}, &models.Plan{},
		&models.Membership{}, &models.Payment{}, &models.PaymentTransaction{}, &models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func seedPlan(t *testing.T, db *gorm.DB, name string, months int, price float64) models.Plan {
	t.Helper()
	p := models.Plan{PlanName: name, DurationMonths: months, Price: price}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return p
}

// seedRegistration registers one member on Monthly with 500 of 1500 paid and
// returns the created ids.
func seedRegistration(t *testing.T, db *gorm.DB) *services.RegistrationResult {
	t.Helper()
	seedPlan(t, db, "Monthly", 1, 1500)
	due := mustParse(t, "2024-02-01")
	out, err := services.NewRegistrationService(db).Register(services.RegisterInput{
		FullName:      "Asha Verma",
		PhoneNumber:   "9876543210",
		SelectedPlan:  "Monthly",
		PlanStartDate: mustParse(t, "2024-01-15"),
		AmountPaidNow: 500,
		PaymentMode:   "cash",
		NextDueDate:   &due,
	})
	if err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	return out
}
