package models

import "time"

// Payment status is a pure function of paid vs total (see StatusFor); the
// stored column must always agree with it.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentFull    = "full"
)

// Transaction types appearing in the ledger. "refund" exists in the
// vocabulary for display purposes but no code path writes one — there is no
// decrement policy.
const (
	TxnMembershipFee     = "membership_fee"
	TxnAdditionalPayment = "additional_payment"
	TxnRenewal           = "renewal"
	TxnRefund            = "refund"
)

// Payment is the aggregate money record for one membership: the authoritative
// running total, kept consistent by every writer. Invariant after any write:
// 0 <= paid_amount <= total_amount.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MembershipID  uint       `gorm:"uniqueIndex;not null" json:"membership_id"`
	TotalAmount   float64    `gorm:"not null" json:"total_amount"`
	PaidAmount    float64    `gorm:"not null" json:"paid_amount"`
	PaymentMode   string     `json:"payment_mode,omitempty"`
	PaymentStatus string     `gorm:"not null;index" json:"payment_status"`
	NextDueDate   *time.Time `json:"next_due_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PaymentTransaction is one immutable ledger entry. Rows are only ever
// appended; the Payment running total is updated in the same transaction.
type PaymentTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MemberID        uint      `gorm:"not null;index" json:"member_id"`
	MembershipID    uint      `gorm:"not null;index" json:"membership_id"`
	TransactionType string    `gorm:"not null" json:"transaction_type"`
	Amount          float64   `gorm:"not null" json:"amount"`
	PaymentMode     string    `json:"payment_mode,omitempty"`
	TransactionDate time.Time `gorm:"not null" json:"transaction_date"`
	ReceiptNumber   string    `json:"receipt_number,omitempty"`
	// Optional client-supplied key guarding against double submission.
	IdempotencyKey *string   `gorm:"uniqueIndex" json:"idempotency_key,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// StatusFor derives the payment status implied by the amounts:
// paid <= 0 is pending, paid >= total is full, anything between is partial.
func StatusFor(paid, total float64) string {
	switch {
	case paid >= total:
		return PaymentFull
	case paid <= 0:
		return PaymentPending
	default:
		return PaymentPartial
	}
}
