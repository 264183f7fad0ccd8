package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInvalidRole), errors.Is(err, auth.ErrSubjectRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrPermissionDenied):
		Forbidden(w, "Insufficient permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidNIK):
		BadRequest(w, err.Error(), nil)

	// Credential domain errors
	case errors.Is(err, credential.ErrEmptyEmployeeID):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, credential.ErrTokenNotFound):
		NotFound(w, "Credential not found")

	// Monitoring domain errors
	case errors.Is(err, monitoring.ErrMonitoringNotFound):
		NotFound(w, "Leave monitoring row not found")
	case errors.Is(err, monitoring.ErrAlreadyEnrolled):
		Conflict(w, "Employee already enrolled in leave monitoring")
	case errors.Is(err, monitoring.ErrInvalidLeaveOption), errors.Is(err, monitoring.ErrLeaveEndBeforeStart):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, monitoring.ErrStaleRow):
		Conflict(w, "Leave monitoring row changed, retry")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyAttended):
		Conflict(w, "Attendance already recorded")
	case errors.Is(err, attendance.ErrStorageUnavailable):
		ServiceUnavailable(w, "Attendance storage unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// DecisionStatus maps an admission decision to its HTTP status
func DecisionStatus(d attendance.ScanResponse) int {
	if d.Outcome != attendance.OutcomeRejected {
		return http.StatusOK
	}
	switch d.Reason {
	case attendance.ReasonInvalidQR:
		return http.StatusBadRequest
	case attendance.ReasonNotScheduled, attendance.ReasonOutsideShiftWindow:
		return http.StatusUnprocessableEntity
	case attendance.ReasonAlreadyAttended:
		return http.StatusConflict
	case attendance.ReasonEmployeeNotFound:
		return http.StatusNotFound
	case attendance.ReasonStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

// Decision writes a scan decision. Rejections keep the decision body so the
// scanner UI can render the reason and the required window.
func Decision(w http.ResponseWriter, d attendance.ScanResponse) {
	status := DecisionStatus(d)
	if status == http.StatusOK {
		writeJSON(w, status, Response{
			Success: true,
			Message: string(d.Outcome),
			Data:    d,
		})
		return
	}
	writeJSON(w, status, Response{
		Success: false,
		Data:    d,
		Error: &ErrorDetail{
			Code:    string(d.Reason),
			Message: reasonMessage(d.Reason),
		},
	})
}

func reasonMessage(r attendance.Reason) string {
	switch r {
	case attendance.ReasonInvalidQR:
		return "QR code is not a valid attendance credential"
	case attendance.ReasonNotScheduled:
		return "Employee is not scheduled today"
	case attendance.ReasonOutsideShiftWindow:
		return "Scan is outside the scheduled shift window"
	case attendance.ReasonAlreadyAttended:
		return "Attendance already recorded today"
	case attendance.ReasonEmployeeNotFound:
		return "Employee not found"
	case attendance.ReasonStorageUnavailable:
		return "Attendance storage unavailable, retry the scan"
	default:
		return string(r)
	}
}
