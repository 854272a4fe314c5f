package models

import "time"

// Member holds the personal record created once at registration. Members are
// edited by reception/admin but never hard-deleted.
type Member struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	FullName              string     `gorm:"not null" json:"full_name"`
	PhoneNumber           string     `gorm:"uniqueIndex;not null" json:"phone_number"`
	Email                 *string    `gorm:"uniqueIndex" json:"email"`
	Gender                string     `json:"gender,omitempty"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Address               string     `json:"address,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	ProfilePhotoURL       string     `json:"profile_photo_url,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// MedicalInfo is the optional 1:1 medical record captured at registration.
type MedicalInfo struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	MemberID            uint   `gorm:"not null;index" json:"member_id"`
	MedicalConditions   string `json:"medical_conditions,omitempty"`
	InjuriesLimitations string `json:"injuries_limitations,omitempty"`
	AdditionalNotes     string `json:"additional_notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}
