package services

import (
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"

	"github.com/gymportal/gym-portal/internal/models"
)

// SetupService handles first-run creation of the initial admin account.
type SetupService struct{ DB *gorm.DB }

func NewSetupService(db *gorm.DB) *SetupService { return &SetupService{DB: db} }

// AdminExists reports whether any admin account has been created yet.
func (s *SetupService) AdminExists() (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAdmin creates the first admin inside a transaction that takes an
// exclusive lock on the users table (Postgres), so two concurrent setup
// attempts cannot both pass the admin-exists check.
func (s *SetupService) CreateAdmin(name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("LOCK TABLE users IN EXCLUSIVE MODE").Error; err != nil {
				return err
			}
		}
		var count int64
		if err := tx.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAdminExists
		}
		user = models.User{
			Name:       name,
			Email:      email,
			Password:   string(hash),
			Role:       models.RoleAdmin,
			IsVerified: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return translateDuplicate(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
