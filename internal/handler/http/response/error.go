package response

import (
	"errors"
	"net/http"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/employee"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/jobposting"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/payroll"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/verification"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record is already paid")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Paid payroll records cannot be deleted")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrScheduleNotFound):
		NotFound(w, "Statutory schedule not found")

	// Verification domain errors
	case errors.Is(err, verification.ErrDocumentNotFound):
		NotFound(w, "Verification document not found")
	case errors.Is(err, verification.ErrInvalidDocumentType):
		BadRequest(w, "Invalid document type", nil)
	case errors.Is(err, verification.ErrDocumentNotPending):
		Conflict(w, "Document is not pending review")
	case errors.Is(err, verification.ErrDocumentSuperseded):
		Conflict(w, "Document was superseded by a newer upload")
	case errors.Is(err, verification.ErrRejectionReasonNeeded):
		BadRequest(w, "Rejection requires a reason", nil)
	case errors.Is(err, verification.ErrVerificationNotFound):
		NotFound(w, "Company verification not found")

	// Job posting domain errors
	case errors.Is(err, jobposting.ErrPostingNotFound):
		NotFound(w, "Job posting not found")
	case errors.Is(err, jobposting.ErrPostingAlreadyClosed):
		Conflict(w, "Job posting already closed")

	// Subscription domain errors. Quota exhaustion is a normal reportable
	// outcome with its own code; store failures fall through to 500.
	case errors.Is(err, subscription.ErrQuotaExhausted):
		UnprocessableEntity(w, "QUOTA_EXHAUSTED", "Job posting quota exhausted for this billing period")
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		NotFound(w, "Subscription not found")
	case errors.Is(err, subscription.ErrSubscriptionInactive):
		Forbidden(w, "Subscription is not active")
	case errors.Is(err, subscription.ErrPlanNotFound):
		NotFound(w, "Plan not found")
	case errors.Is(err, subscription.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
