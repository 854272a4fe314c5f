package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Domain errors surfaced to handlers, which translate them into the API's
// message strings and status codes.
var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanInUse           = errors.New("plan is in use by members")
	ErrDuplicatePlanName   = errors.New("plan name already exists")
	ErrPhoneExists         = errors.New("phone number already exists")
	ErrEmailExists         = errors.New("email already exists")
	ErrPaymentNotFound     = errors.New("payment record not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrOverpayment         = errors.New("amount exceeds pending balance")
	ErrNextDueDateRequired = errors.New("next due date required for partial payment")
	ErrAdminExists         = errors.New("admin already exists")
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrSelfDelete          = errors.New("cannot delete your own account")
)

// translateDuplicate maps datastore unique-constraint violations onto the
// matching domain error. Anything else passes through untouched.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		!strings.Contains(msg, "duplicate") && !strings.Contains(msg, "unique") {
		return err
	}
	switch {
	case strings.Contains(msg, "phone"):
		return ErrPhoneExists
	case strings.Contains(msg, "email"):
		return ErrEmailExists
	case strings.Contains(msg, "plan_name"):
		return ErrDuplicatePlanName
	}
	return err
}
