package services

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// RegisterInput carries everything the reception desk submits for a new member.
type RegisterInput struct {
	FullName              string     `validate:"required"`
	PhoneNumber           string     `validate:"required"`
	Email                 string     `validate:"omitempty,email"`
	Gender                string     `validate:"omitempty,oneof=male female other"`
	DateOfBirth           *time.Time
	Address               string
	EmergencyContactName  string
	EmergencyContactPhone string
	ProfilePhotoURL       string

	SelectedPlan    string    `validate:"required"`
	PlanStartDate   time.Time `validate:"required"`
	TrainerAssigned string
	BatchTime       string
	MembershipType  string
	LockerRequired  bool

	MedicalConditions   string
	InjuriesLimitations string
	AdditionalNotes     string

	// TotalPlanFee defaults to the plan price when zero; reception may override.
	TotalPlanFee  float64 `validate:"gte=0"`
	AmountPaidNow float64 `validate:"gte=0"`
	PaymentMode   string  `validate:"required"`
	NextDueDate   *time.Time
}

// RegistrationResult identifies the rows created by one registration.
type RegistrationResult struct {
	MemberID     uint `json:"member_id"`
	MembershipID uint `json:"membership_id"`
	PaymentID    uint `json:"payment_id"`
}

// RegistrationService creates Member + Membership + Payment (+ MedicalInfo)
// in one atomic unit. Failure of any step persists nothing: no member is
// ever left without a membership.
type RegistrationService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{DB: db, validate: validator.New()}
}

func (s *RegistrationService) Register(in RegisterInput) (*RegistrationResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	var out RegistrationResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var email *string
		if in.Email != "" {
			e := in.Email
			email = &e
		}
		member := models.Member{
			FullName:              in.FullName,
			PhoneNumber:           in.PhoneNumber,
			Email:                 email,
			Gender:                in.Gender,
			DateOfBirth:           in.DateOfBirth,
			Address:               in.Address,
			EmergencyContactName:  in.EmergencyContactName,
			EmergencyContactPhone: in.EmergencyContactPhone,
			ProfilePhotoURL:       in.ProfilePhotoURL,
		}
		if err := tx.Create(&member).Error; err != nil {
			return translateDuplicate(err)
		}

		var plan models.Plan
		if err := tx.Where("plan_name = ?", in.SelectedPlan).First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return err
		}

		membership := models.Membership{
			MemberID:        member.ID,
			PlanID:          plan.ID,
			StartDate:       in.PlanStartDate,
			EndDate:         models.EndDate(in.PlanStartDate, plan.DurationMonths),
			Status:          models.MembershipActive,
			TrainerAssigned: in.TrainerAssigned,
			BatchTime:       in.BatchTime,
			MembershipType:  in.MembershipType,
			LockerRequired:  in.LockerRequired,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		total := in.TotalPlanFee
		if total == 0 {
			total = plan.Price
		}
		if in.AmountPaidNow > total {
			return ErrOverpayment
		}
		status := models.StatusFor(in.AmountPaidNow, total)
		if status == models.PaymentPartial && in.NextDueDate == nil {
			return ErrNextDueDateRequired
		}
		payment := models.Payment{
			MembershipID:  membership.ID,
			TotalAmount:   total,
			PaidAmount:    in.AmountPaidNow,
			PaymentMode:   in.PaymentMode,
			PaymentStatus: status,
			NextDueDate:   in.NextDueDate,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		// Ledger the initial payment so revenue queries can run off transactions alone.
		if in.AmountPaidNow > 0 {
			txn := models.PaymentTransaction{
				MemberID:        member.ID,
				MembershipID:    membership.ID,
				TransactionType: models.TxnMembershipFee,
				Amount:          in.AmountPaidNow,
				PaymentMode:     in.PaymentMode,
				TransactionDate: in.PlanStartDate,
				ReceiptNumber:   newReceiptNumber(),
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
		}

		if in.MedicalConditions != "" || in.InjuriesLimitations != "" || in.AdditionalNotes != "" {
			med := models.MedicalInfo{
				MemberID:            member.ID,
				MedicalConditions:   in.MedicalConditions,
				InjuriesLimitations: in.InjuriesLimitations,
				AdditionalNotes:     in.AdditionalNotes,
			}
			if err := tx.Create(&med).Error; err != nil {
				return err
			}
		}

		out = RegistrationResult{MemberID: member.ID, MembershipID: membership.ID, PaymentID: payment.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
