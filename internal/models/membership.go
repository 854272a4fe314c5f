package models

import (
	"math"
	"time"
)

// Stored membership status. Set by administrative action only; there is no
// automatic transition job — expiry is classified at read time.
const (
	MembershipActive    = "active"
	MembershipInactive  = "inactive"
	MembershipExpired   = "expired"
	MembershipSuspended = "suspended"
)

// Read-time classifications layered on top of the stored status.
const (
	ClassExpired      = "expired"
	ClassExpiringSoon = "expiring_soon"
)

// ExpiringSoonDays is the look-ahead window for the "expiring soon" class.
const ExpiringSoonDays = 7

// Membership is the time-bounded relationship between a Member and a Plan.
type Membership struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MemberID        uint      `gorm:"not null;index" json:"member_id"`
	Member          Member    `gorm:"foreignKey:MemberID" json:"-"`
	PlanID          uint      `gorm:"not null;index" json:"plan_id"`
	Plan            Plan      `gorm:"foreignKey:PlanID" json:"-"`
	StartDate       time.Time `gorm:"not null" json:"start_date"`
	EndDate         time.Time `gorm:"not null;index" json:"end_date"`
	Status          string    `gorm:"not null;default:active" json:"status"`
	TrainerAssigned string    `json:"trainer_assigned,omitempty"`
	BatchTime       string    `json:"batch_time,omitempty"`
	MembershipType  string    `json:"membership_type,omitempty"`
	LockerRequired  bool      `json:"locker_required"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EndDate computes start + months with Go's calendar normalization, so
// Jan 31 + 1 month lands on Mar 2/3 rather than a clamped Feb date. This
// matches how end dates have always been produced for existing rows.
func EndDate(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// DaysUntil returns the number of whole days from now until end, rounding up.
// Negative when end has passed.
func DaysUntil(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// ClassifyExpiry derives the read-time classification for a membership:
// expired when the end date has passed or the stored status says so,
// expiring_soon within the 7-day window, otherwise the stored status.
func ClassifyExpiry(status string, endDate, now time.Time) string {
	if status == MembershipExpired || endDate.Before(now) {
		return ClassExpired
	}
	if d := DaysUntil(endDate, now); d >= 0 && d <= ExpiringSoonDays {
		return ClassExpiringSoon
	}
	return status
}
