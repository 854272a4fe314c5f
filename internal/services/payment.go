package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gymportal/gym-portal/internal/models"
)

// AddPaymentInput is one incremental payment against an existing membership.
type AddPaymentInput struct {
	MembershipID  uint
	Amount        float64
	PaymentMode   string
	Date          time.Time
	ReceiptNumber string
	// IdempotencyKey guards against double submission: a repeated key returns
	// the original transaction without applying the amount again.
	IdempotencyKey string
}

// PaymentService owns every write to the payment ledger. Each accepted write
// updates the running total and appends exactly one immutable transaction,
// inside a single database transaction with the payment row locked.
type PaymentService struct{ DB *gorm.DB }

func NewPaymentService(db *gorm.DB) *PaymentService { return &PaymentService{DB: db} }

func newReceiptNumber() string {
	return "RCP-" + strings.ToUpper(uuid.NewString()[:8])
}

// AddPayment applies one incremental payment. Rejected (payment row
// untouched) when the amount is not positive or would push paid_amount above
// total_amount.
func (s *PaymentService) AddPayment(in AddPaymentInput) (*models.PaymentTransaction, error) {
	if in.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	var txn models.PaymentTransaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.IdempotencyKey != "" {
			var existing models.PaymentTransaction
			err := tx.Where("idempotency_key = ?", in.IdempotencyKey).First(&existing).Error
			if err == nil {
				txn = existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		q := tx.Where("membership_id = ?", in.MembershipID)
		if tx.Dialector.Name() == "postgres" {
			// Serialize concurrent additions to the same membership.
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var payment models.Payment
		if err := q.First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		newPaid := payment.PaidAmount + in.Amount
		if newPaid > payment.TotalAmount {
			return ErrOverpayment
		}
		payment.PaidAmount = newPaid
		payment.PaymentStatus = models.StatusFor(newPaid, payment.TotalAmount)
		payment.PaymentMode = in.PaymentMode
		if payment.PaymentStatus == models.PaymentFull {
			payment.NextDueDate = nil
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		var membership models.Membership
		if err := tx.Select("member_id").First(&membership, payment.MembershipID).Error; err != nil {
			return err
		}
		receipt := in.ReceiptNumber
		if receipt == "" {
			receipt = newReceiptNumber()
		}
		var key *string
		if in.IdempotencyKey != "" {
			k := in.IdempotencyKey
			key = &k
		}
		txn = models.PaymentTransaction{
			MemberID:        membership.MemberID,
			MembershipID:    in.MembershipID,
			TransactionType: models.TxnAdditionalPayment,
			Amount:          in.Amount,
			PaymentMode:     in.PaymentMode,
			TransactionDate: in.Date,
			ReceiptNumber:   receipt,
			IdempotencyKey:  key,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdatePaymentInput is a direct administrative edit of a payment record.
// Nil fields are left unchanged; the status is always re-derived, never
// accepted from the caller.
type UpdatePaymentInput struct {
	PaidAmount  *float64
	TotalAmount *float64
	PaymentMode *string
	NextDueDate *time.Time
}

func (s *PaymentService) UpdatePayment(paymentID uint, in UpdatePaymentInput) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", paymentID)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if in.TotalAmount != nil {
			payment.TotalAmount = *in.TotalAmount
		}
		if in.PaidAmount != nil {
			payment.PaidAmount = *in.PaidAmount
		}
		if payment.PaidAmount < 0 || payment.PaidAmount > payment.TotalAmount {
			return ErrOverpayment
		}
		if in.PaymentMode != nil {
			payment.PaymentMode = *in.PaymentMode
		}
		if in.NextDueDate != nil {
			payment.NextDueDate = in.NextDueDate
		}
		payment.PaymentStatus = models.StatusFor(payment.PaidAmount, payment.TotalAmount)
		if payment.PaymentStatus == models.PaymentFull {
			payment.NextDueDate = nil
		}
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
