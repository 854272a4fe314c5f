package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/models"
	"github.com/gymportal/gym-portal/internal/services"
	"github.com/gymportal/gym-portal/validation"
)

type PaymentHandler struct {
	DB    *gorm.DB
	Svc   *services.PaymentService
	Audit *services.AuditService
}

func NewPaymentHandler(db *gorm.DB, svc *services.PaymentService, audit *services.AuditService) *PaymentHandler {
	return &PaymentHandler{DB: db, Svc: svc, Audit: audit}
}

// PaymentSummary is one row of the payments listing (payment joined with
// member, membership and plan).
type PaymentSummary struct {
	ID            uint       `json:"id"`
	MembershipID  uint       `json:"membership_id"`
	TotalAmount   float64    `json:"total_amount"`
	PaidAmount    float64    `json:"paid_amount"`
	PaymentMode   string     `json:"payment_mode,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	NextDueDate   *time.Time `json:"next_due_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	MemberID      uint       `json:"member_id"`
	FullName      string     `json:"full_name"`
	PhoneNumber   string     `json:"phone_number"`
	PlanName      string     `json:"plan_name"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	var rows []PaymentSummary
	err := h.DB.Table("payments").
		Select(`payments.id, payments.membership_id, payments.total_amount, payments.paid_amount,
			payments.payment_mode, payments.payment_status, payments.next_due_date, payments.created_at,
			members.id AS member_id, members.full_name, members.phone_number,
			memberships.start_date, memberships.end_date, plans.plan_name`).
		Joins("JOIN memberships ON memberships.id = payments.membership_id").
		Joins("JOIN members ON members.id = memberships.member_id").
		Joins("JOIN plans ON plans.id = memberships.plan_id").
		Order("payments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "payments": rows})
}

type addPaymentRequest struct {
	MembershipID   uint    `json:"membership_id"`
	Amount         float64 `json:"amount"`
	PaymentMode    string  `json:"payment_mode"`
	PaymentDate    string  `json:"payment_date"`
	ReceiptNumber  string  `json:"receipt_number"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// Add applies one incremental payment to a membership.
func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	v := validation.Violations{}
	if req.MembershipID == 0 {
		v["membership_id"] = "required"
	}
	validation.PositiveFloat("amount", req.Amount, v)
	validation.Required("payment_mode", req.PaymentMode, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	date := time.Now()
	if d := optionalDate(req.PaymentDate); d != nil {
		date = *d
	}

	txn, err := h.Svc.AddPayment(services.AddPaymentInput{
		MembershipID:   req.MembershipID,
		Amount:         req.Amount,
		PaymentMode:    req.PaymentMode,
		Date:           date,
		ReceiptNumber:  req.ReceiptNumber,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("create", "payment_transaction", txn.ID,
		fmt.Sprintf("Added payment of %.2f (%s) to membership %d", req.Amount, req.PaymentMode, req.MembershipID),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Payment added successfully",
		"transaction": txn,
	})
}

// TransactionRow is one ledger entry joined with member/plan context.
type TransactionRow struct {
	ID              uint      `json:"id"`
	MemberID        uint      `json:"member_id"`
	MembershipID    uint      `json:"membership_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          float64   `json:"amount"`
	PaymentMode     string    `json:"payment_mode,omitempty"`
	TransactionDate time.Time `json:"transaction_date"`
	ReceiptNumber   string    `json:"receipt_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	FullName        string    `json:"full_name"`
	PhoneNumber     string    `json:"phone_number"`
	PlanName        string    `json:"plan_name"`
	TotalAmount     float64   `json:"total_amount"`
	PaidAmount      float64   `json:"paid_amount"`
	PaymentStatus   string    `json:"payment_status"`
}

// History lists the full payment ledger, newest first.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	var rows []TransactionRow
	err := h.DB.Table("payment_transactions").
		Select(`payment_transactions.id, payment_transactions.member_id, payment_transactions.membership_id,
			payment_transactions.transaction_type, payment_transactions.amount, payment_transactions.payment_mode,
			payment_transactions.transaction_date, payment_transactions.receipt_number, payment_transactions.created_at,
			members.full_name, members.phone_number, plans.plan_name,
			payments.total_amount, payments.paid_amount, payments.payment_status`).
		Joins("JOIN memberships ON memberships.id = payment_transactions.membership_id").
		Joins("JOIN members ON members.id = payment_transactions.member_id").
		Joins("JOIN plans ON plans.id = memberships.plan_id").
		Joins("JOIN payments ON payments.membership_id = payment_transactions.membership_id").
		Order("payment_transactions.transaction_date DESC, payment_transactions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "transactions": rows})
}

// MemberTimeline lists one membership's ledger entries in chronological order.
func (h *PaymentHandler) MemberTimeline(w http.ResponseWriter, r *http.Request) {
	membershipID, err := strconv.Atoi(r.URL.Query().Get("membership_id"))
	if err != nil || membershipID <= 0 {
		httpx.Error(w, http.StatusBadRequest, "Membership ID is required", nil)
		return
	}
	var txns []models.PaymentTransaction
	err = h.DB.Where("membership_id = ?", membershipID).
		Order("transaction_date ASC, created_at ASC").
		Find(&txns).Error
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "transactions": txns})
}

type updatePaymentRequest struct {
	PaidAmount  *float64 `json:"paid_amount"`
	TotalAmount *float64 `json:"total_amount"`
	PaymentMode *string  `json:"payment_mode"`
	NextDueDate *string  `json:"next_due_date"`
}

// Update is the direct administrative edit (PUT /api/payments/{id}).
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "invalid payment id", nil)
		return
	}
	var req updatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	in := services.UpdatePaymentInput{
		PaidAmount:  req.PaidAmount,
		TotalAmount: req.TotalAmount,
		PaymentMode: req.PaymentMode,
	}
	if req.NextDueDate != nil {
		in.NextDueDate = optionalDate(*req.NextDueDate)
	}
	payment, err := h.Svc.UpdatePayment(uint(id), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("update", "payment", payment.ID,
		fmt.Sprintf("Edited payment record for membership %d", payment.MembershipID),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Payment updated successfully", "payment": payment})
}
