package models

import "time"

// Staff user roles. Members never log in; only staff accounts exist.
const (
	RoleAdmin     = "admin"
	RoleReception = "reception"
)

// User is a staff account (admin or reception).
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"` // bcrypt hash
	Role       string `gorm:"not null;index" json:"role"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
