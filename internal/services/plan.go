package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// PlanService implements the plan catalog CRUD. The one business rule beyond
// uniqueness: a plan referenced by any membership cannot be deleted, checked
// explicitly before the delete rather than left to FK behavior.
type PlanService struct{ DB *gorm.DB }

func NewPlanService(db *gorm.DB) *PlanService { return &PlanService{DB: db} }

func (s *PlanService) List() ([]models.Plan, error) {
	var plans []models.Plan
	if err := s.DB.Order("duration_months asc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *PlanService) Create(name string, durationMonths int, price float64) (*models.Plan, error) {
	p := models.Plan{PlanName: name, DurationMonths: durationMonths, Price: price}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, translateDuplicate(err)
	}
	return &p, nil
}

func (s *PlanService) Update(id uint, name string, durationMonths int, price float64) (*models.Plan, error) {
	var p models.Plan
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	p.PlanName = name
	p.DurationMonths = durationMonths
	p.Price = price
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, translateDuplicate(err)
	}
	return &p, nil
}

func (s *PlanService) Delete(id uint) (*models.Plan, error) {
	var p models.Plan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return err
		}
		var inUse int64
		if err := tx.Model(&models.Membership{}).Where("plan_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ErrPlanInUse
		}
		return tx.Delete(&models.Plan{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
