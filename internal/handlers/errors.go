package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gymportal/gym-portal/httpx"
	"github.com/gymportal/gym-portal/internal/services"
)

// writeServiceError translates domain errors into the API's status codes and
// message strings. Unknown errors are logged and surfaced as a generic 500,
// never retried.
func writeServiceError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := map[string]string{}
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		httpx.Error(w, http.StatusBadRequest, "validation failed", details)
		return
	}

	switch {
	case errors.Is(err, services.ErrPhoneExists):
		httpx.Error(w, http.StatusConflict, "Phone number already exists", nil)
	case errors.Is(err, services.ErrEmailExists):
		httpx.Error(w, http.StatusConflict, "Email already exists", nil)
	case errors.Is(err, services.ErrDuplicatePlanName):
		httpx.Error(w, http.StatusConflict, "Plan name already exists", nil)
	case errors.Is(err, services.ErrPlanInUse):
		httpx.Error(w, http.StatusConflict, "Cannot delete plan that is being used by members", nil)
	case errors.Is(err, services.ErrPlanNotFound):
		httpx.Error(w, http.StatusNotFound, "Plan not found", nil)
	case errors.Is(err, services.ErrPaymentNotFound):
		httpx.Error(w, http.StatusNotFound, "Payment record not found", nil)
	case errors.Is(err, services.ErrMemberNotFound):
		httpx.Error(w, http.StatusNotFound, "Member not found", nil)
	case errors.Is(err, services.ErrStaffNotFound):
		httpx.Error(w, http.StatusNotFound, "Staff member not found or cannot be deleted", nil)
	case errors.Is(err, services.ErrNonPositiveAmount):
		httpx.Error(w, http.StatusBadRequest, "Amount must be positive", nil)
	case errors.Is(err, services.ErrOverpayment):
		httpx.Error(w, http.StatusBadRequest, "Amount exceeds pending balance", nil)
	case errors.Is(err, services.ErrNextDueDateRequired):
		httpx.Error(w, http.StatusBadRequest, "Next due date is required for partial payment", nil)
	case errors.Is(err, services.ErrAdminExists):
		httpx.Error(w, http.StatusBadRequest, "Admin already exists", nil)
	case errors.Is(err, services.ErrSelfDelete):
		httpx.Error(w, http.StatusBadRequest, "Cannot delete your own account", nil)
	default:
		log.Printf("unexpected service error: %v", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error", nil)
	}
}
