package services

import (
	"crypto/rand"
	"errors"
	"math/big"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// StaffService manages staff accounts (admin-only surface).
type StaffService struct{ DB *gorm.DB }

func NewStaffService(db *gorm.DB) *StaffService { return &StaffService{DB: db} }

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

func generatePassword(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}

// List returns all staff accounts, admins first, newest within each role.
func (s *StaffService) List() ([]models.User, error) {
	var staff []models.User
	err := s.DB.
		Where("role IN ?", []string{models.RoleAdmin, models.RoleReception}).
		Order("role asc, created_at desc").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// AddReception creates a reception account with a generated temporary
// password and returns it alongside the user, so the admin can hand over the
// credentials (mail delivery is not this service's concern).
func (s *StaffService) AddReception(name, email string) (*models.User, string, error) {
	tempPassword, err := generatePassword(12)
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Role:       models.RoleReception,
		IsVerified: true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, "", translateDuplicate(err)
	}
	return &user, tempPassword, nil
}

// DeleteReception removes a reception account. Admin accounts and the actor's
// own account are refused.
func (s *StaffService) DeleteReception(staffID, actorID uint) (*models.User, error) {
	if staffID == actorID {
		return nil, ErrSelfDelete
	}
	var user models.User
	err := s.DB.Where("id = ? AND role = ?", staffID, models.RoleReception).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if err := s.DB.Delete(&models.User{}, user.ID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
