package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/auth"
	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/models"
	"github.com/gymportal/gym-portal/internal/services"
	"github.com/gymportal/gym-portal/validation"
)

type MemberHandler struct {
	DB    *gorm.DB
	Reg   *services.RegistrationService
	Audit *services.AuditService
}

func NewMemberHandler(db *gorm.DB, reg *services.RegistrationService, audit *services.AuditService) *MemberHandler {
	return &MemberHandler{DB: db, Reg: reg, Audit: audit}
}

// MemberSummary is one row of the members listing: the member joined with
// its membership, plan and payment, plus the read-time expiry classification.
type MemberSummary struct {
	ID              uint       `json:"id"`
	FullName        string     `json:"full_name"`
	PhoneNumber     string     `json:"phone_number"`
	Email           *string    `json:"email,omitempty"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	MembershipID    uint       `json:"membership_id"`
	PlanName        string     `json:"plan_name"`
	DurationMonths  int        `json:"duration_months"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          string     `json:"membership_status" gorm:"column:membership_status"`
	Classification  string     `json:"classification" gorm:"-"`
	TrainerAssigned string     `json:"trainer_assigned,omitempty"`
	BatchTime       string     `json:"batch_time,omitempty"`
	TotalAmount     float64    `json:"total_amount"`
	PaidAmount      float64    `json:"paid_amount"`
	PaymentStatus   string     `json:"payment_status"`
	NextDueDate     *time.Time `json:"next_due_date,omitempty"`
}

// List returns all members with membership, plan and payment data joined in.
// ?filter=expired restricts to memberships past their end date (or flagged
// expired by staff).
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	q := h.DB.Table("members").
		Select(`members.id, members.full_name, members.phone_number, members.email,
			members.profile_photo_url, members.created_at,
			memberships.id AS membership_id, memberships.start_date, memberships.end_date,
			memberships.status AS membership_status, memberships.trainer_assigned, memberships.batch_time,
			plans.plan_name, plans.duration_months,
			payments.total_amount, payments.paid_amount, payments.payment_status, payments.next_due_date`).
		Joins("LEFT JOIN memberships ON memberships.member_id = members.id").
		Joins("LEFT JOIN plans ON plans.id = memberships.plan_id").
		Joins("LEFT JOIN payments ON payments.membership_id = memberships.id").
		Order("members.created_at DESC")
	if r.URL.Query().Get("filter") == "expired" {
		q = q.Where("memberships.end_date < ? OR memberships.status = ?", now, models.MembershipExpired)
	}
	var rows []MemberSummary
	if err := q.Scan(&rows).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	for i := range rows {
		if rows[i].EndDate != nil {
			rows[i].Classification = models.ClassifyExpiry(rows[i].Status, *rows[i].EndDate, now)
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "members": rows})
}

type registerRequest struct {
	FullName              string  `json:"full_name"`
	PhoneNumber           string  `json:"phone_number"`
	Email                 string  `json:"email"`
	Gender                string  `json:"gender"`
	DateOfBirth           string  `json:"date_of_birth"`
	Address               string  `json:"address"`
	EmergencyContactName  string  `json:"emergency_contact_name"`
	EmergencyContactPhone string  `json:"emergency_contact_phone"`
	ProfilePhotoURL       string  `json:"profile_photo_url"`
	SelectedPlan          string  `json:"selected_plan"`
	PlanStartDate         string  `json:"plan_start_date"`
	TrainerAssigned       string  `json:"trainer_assigned"`
	BatchTime             string  `json:"batch_time"`
	MembershipType        string  `json:"membership_type"`
	LockerRequired        bool    `json:"locker_required"`
	MedicalConditions     string  `json:"medical_conditions"`
	InjuriesLimitations   string  `json:"injuries_limitations"`
	AdditionalNotes       string  `json:"additional_notes"`
	TotalPlanFee          float64 `json:"total_plan_fee"`
	AmountPaidNow         float64 `json:"amount_paid_now"`
	PaymentMode           string  `json:"payment_mode"`
	NextDueDate           string  `json:"next_due_date"`
}

func optionalDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// Register creates Member + Membership + Payment atomically.
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("full_name", req.FullName, v)
	validation.Required("phone_number", req.PhoneNumber, v)
	validation.Required("selected_plan", req.SelectedPlan, v)
	validation.Required("payment_mode", req.PaymentMode, v)
	startDate := validation.Date("plan_start_date", req.PlanStartDate, v)
	validation.NonNegativeFloat("amount_paid_now", req.AmountPaidNow, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}

	out, err := h.Reg.Register(services.RegisterInput{
		FullName:              req.FullName,
		PhoneNumber:           req.PhoneNumber,
		Email:                 req.Email,
		Gender:                req.Gender,
		DateOfBirth:           optionalDate(req.DateOfBirth),
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		ProfilePhotoURL:       req.ProfilePhotoURL,
		SelectedPlan:          req.SelectedPlan,
		PlanStartDate:         startDate,
		TrainerAssigned:       req.TrainerAssigned,
		BatchTime:             req.BatchTime,
		MembershipType:        req.MembershipType,
		LockerRequired:        req.LockerRequired,
		MedicalConditions:     req.MedicalConditions,
		InjuriesLimitations:   req.InjuriesLimitations,
		AdditionalNotes:       req.AdditionalNotes,
		TotalPlanFee:          req.TotalPlanFee,
		AmountPaidNow:         req.AmountPaidNow,
		PaymentMode:           req.PaymentMode,
		NextDueDate:           optionalDate(req.NextDueDate),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Audit.Record("create", "member", out.MemberID,
		fmt.Sprintf("Registered member %q on plan %q", req.FullName, req.SelectedPlan),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"message":   "Member registered successfully",
		"member_id": out.MemberID,
	})
}

// Update edits a member's contact details (PATCH /api/members/{id}).
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "invalid member id", nil)
		return
	}
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Email       string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("phone_number", req.PhoneNumber, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}

	var member models.Member
	if err := h.DB.First(&member, id).Error; err != nil {
		writeServiceError(w, services.ErrMemberNotFound)
		return
	}
	member.PhoneNumber = req.PhoneNumber
	if strings.TrimSpace(req.Email) != "" {
		e := req.Email
		member.Email = &e
	} else {
		member.Email = nil
	}
	if err := h.DB.Save(&member).Error; err != nil {
		writeServiceError(w, translateMemberDuplicate(err))
		return
	}
	h.Audit.Record("update", "member", member.ID,
		fmt.Sprintf("Updated contact details for member %q", member.FullName),
		auth.RoleFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Member updated successfully", "member": member})
}

// translateMemberDuplicate mirrors the services-layer duplicate translation
// for the one direct write this handler performs.
func translateMemberDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate") {
		if strings.Contains(msg, "phone") {
			return services.ErrPhoneExists
		}
		if strings.Contains(msg, "email") {
			return services.ErrEmailExists
		}
	}
	return err
}
