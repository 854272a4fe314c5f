package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymportal/gym-portal/internal/models"
)

func TestAddPaymentReachesFull(t *testing.T) {
	db := newTestDB(t)
	out := registerPartial(t, db) // 500 of 1500 paid

	txn, err := NewPaymentService(db).AddPayment(AddPaymentInput{
		MembershipID: out.MembershipID,
		Amount:       1000,
		PaymentMode:  "card",
		Date:         mustDate(t, "2024-01-20"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TxnAdditionalPayment, txn.TransactionType)
	assert.Equal(t, 1000.0, txn.Amount)

	var payment models.Payment
	require.NoError(t, db.First(&payment, out.PaymentID).Error)
	assert.Equal(t, 1500.0, payment.PaidAmount)
	assert.Equal(t, models.PaymentFull, payment.PaymentStatus)
	assert.Equal(t, "card", payment.PaymentMode)
	assert.Nil(t, payment.NextDueDate, "due date cleared once paid in full")
}

func TestAddPaymentRejectsOverpayment(t *testing.T) {
	db := newTestDB(t)
	out := registerPartial(t, db) // pending balance 1000

	_, err := NewPaymentService(db).AddPayment(AddPaymentInput{
		MembershipID: out.MembershipID,
		Amount:       2000,
		PaymentMode:  "cash",
	})
	require.ErrorIs(t, err, ErrOverpayment)

	// rejected write leaves the payment row untouched
	var payment models.Payment
	require.NoError(t, db.First(&payment, out.PaymentID).Error)
	assert.Equal(t, 500.0, payment.PaidAmount)
	assert.Equal(t, models.PaymentPartial, payment.PaymentStatus)

	var ledger int64
	db.Model(&models.PaymentTransaction{}).
		Where("transaction_type = ?", models.TxnAdditionalPayment).
		Count(&ledger)
	assert.Zero(t, ledger, "no transaction appended for a rejected amount")
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	out := registerPartial(t, db)
	svc := NewPaymentService(db)

	_, err := svc.AddPayment(AddPaymentInput{MembershipID: out.MembershipID, Amount: 0})
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	_, err = svc.AddPayment(AddPaymentInput{MembershipID: out.MembershipID, Amount: -50})
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestAddPaymentUnknownMembership(t *testing.T) {
	db := newTestDB(t)
	_, err := NewPaymentService(db).AddPayment(AddPaymentInput{MembershipID: 999, Amount: 100})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestAddPaymentIdempotencyKey(t *testing.T) {
	db := newTestDB(t)
	out := registerPartial(t, db)
	svc := NewPaymentService(db)

	in := AddPaymentInput{
		MembershipID:   out.MembershipID,
		Amount:         300,
		PaymentMode:    "upi",
		IdempotencyKey: "txn-abc-123",
	}
	first, err := svc.AddPayment(in)
	require.NoError(t, err)

	// resubmitting the same key returns the original entry without reapplying
	second, err := svc.AddPayment(in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var payment models.Payment
	require.NoError(t, db.First(&payment, out.PaymentID).Error)
	assert.Equal(t, 800.0, payment.PaidAmount, "amount applied exactly once")

	var ledger int64
	db.Model(&models.PaymentTransaction{}).Where("idempotency_key = ?", "txn-abc-123").Count(&ledger)
	assert.Equal(t, int64(1), ledger)
}

func TestUpdatePayment(t *testing.T) {
	db := newTestDB(t)
	out := registerPartial(t, db)
	svc := NewPaymentService(db)

	paid := 1500.0
	updated, err := svc.UpdatePayment(out.PaymentID, UpdatePaymentInput{PaidAmount: &paid})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFull, updated.PaymentStatus, "status re-derived, never trusted")
	assert.Nil(t, updated.NextDueDate)

	over := 2000.0
	_, err = svc.UpdatePayment(out.PaymentID, UpdatePaymentInput{PaidAmount: &over})
	assert.ErrorIs(t, err, ErrOverpayment)

	_, err = svc.UpdatePayment(9999, UpdatePaymentInput{})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
