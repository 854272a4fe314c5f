package models

import "time"

// AuditLog is a best-effort, append-only record of a mutating action.
// No relational integrity is enforced toward the referenced entity, and a
// failed audit write never rolls back the action it describes.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Action     string    `gorm:"not null" json:"action"` // create, update, delete
	EntityType string    `gorm:"not null" json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	Details    string    `json:"details,omitempty"`
	UserRole   string    `json:"user_role,omitempty"` // verified session role, never request metadata
	CreatedAt  time.Time `json:"created_at"`
}
