package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// newTestDB opens a unique in-memory database per test to avoid cross-test
// collisions, migrated with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func seedMonthlyPlan(t *testing.T, db *gorm.DB) models.Plan {
	t.Helper()
	p := models.Plan{PlanName: "Monthly", DurationMonths: 1, Price: 1500}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return p
}

// registerPartial registers a member on the Monthly plan with 500 of 1500 paid.
func registerPartial(t *testing.T, db *gorm.DB) *RegistrationResult {
	t.Helper()
	seedMonthlyPlan(t, db)
	due := mustDate(t, "2024-02-01")
	out, err := NewRegistrationService(db).Register(RegisterInput{
		FullName:      "Asha Verma",
		PhoneNumber:   "9876543210",
		SelectedPlan:  "Monthly",
		PlanStartDate: mustDate(t, "2024-01-15"),
		AmountPaidNow: 500,
		PaymentMode:   "cash",
		NextDueDate:   &due,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return out
}
