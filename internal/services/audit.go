package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// AuditService appends best-effort audit entries. Record never returns an
// error: a failed audit write is logged and swallowed so the primary action
// is not blocked or rolled back.
type AuditService struct{ DB *gorm.DB }

func NewAuditService(db *gorm.DB) *AuditService { return &AuditService{DB: db} }

// Record appends one audit entry. role must come from the verified session.
func (s *AuditService) Record(action, entityType string, entityID uint, details, role string) {
	entry := models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		UserRole:   role,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("audit log write failed (action=%s entity=%s/%d): %v", action, entityType, entityID, err)
	}
}

// Recent returns the latest entries, newest first.
func (s *AuditService) Recent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.AuditLog
	if err := s.DB.Order("created_at desc, id desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
