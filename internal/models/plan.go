package models

import "time"

// Plan is a named, priced, fixed-duration membership offering. A plan is
// effectively immutable once memberships reference it: deletion is refused
// while in use (checked explicitly, not left to FK cascade behavior).
type Plan struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	PlanName       string  `gorm:"uniqueIndex;not null" json:"plan_name"`
	DurationMonths int     `gorm:"not null" json:"duration_months"`
	Price          float64 `gorm:"not null" json:"price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
