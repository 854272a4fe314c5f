package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// Seed inserts the baseline plan catalog when missing. Safe to run repeatedly.
func Seed(db *gorm.DB) {
	basePlans := []models.Plan{
		{PlanName: "Monthly", DurationMonths: 1, Price: 1500},
		{PlanName: "3 Months", DurationMonths: 3, Price: 4000},
		{PlanName: "6 Months", DurationMonths: 6, Price: 7500},
		{PlanName: "Annual", DurationMonths: 12, Price: 14000},
	}
	for _, p := range basePlans {
		var existing models.Plan
		if err := db.Where("plan_name = ?", p.PlanName).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&p)
		}
	}
}
