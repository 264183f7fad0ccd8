package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// SCAN DTOs
// ========================================

type ScanRequest struct {
	Raw       string  `json:"raw"`
	ScannerID *string `json:"scanner_id,omitempty"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ScannerID != nil && validator.IsEmpty(*r.ScannerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "scanner_id",
			Message: "scanner_id must not be blank when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScanResponse struct {
	Outcome           Outcome             `json:"outcome"`
	Reason            Reason              `json:"reason,omitempty"`
	EmployeeID        string              `json:"employee_id,omitempty"`
	Date              string              `json:"date"`
	ActualTime        string              `json:"actual_time"`
	ScheduledShift    string              `json:"scheduled_shift,omitempty"`
	RequiredWindow    *WindowResponse     `json:"required_window,omitempty"`
	ResolvedShift     string              `json:"resolved_shift,omitempty"`
	OutsideAllWindows bool                `json:"outside_all_windows,omitempty"`
	Warnings          []Warning           `json:"warnings,omitempty"`
	Attendance        *AttendanceResponse `json:"attendance,omitempty"`
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewScanResponse renders a decision, with the committed record when there is one.
func NewScanResponse(d Decision, rec *AttendanceRecord) ScanResponse {
	resp := ScanResponse{
		Outcome:           d.Outcome,
		Reason:            d.Reason,
		EmployeeID:        d.EmployeeID,
		Date:              d.Date.Format("2006-01-02"),
		ActualTime:        d.ActualTime.String(),
		ScheduledShift:    string(d.ScheduledShift),
		ResolvedShift:     string(d.ResolvedShift),
		OutsideAllWindows: d.OutsideAllWindows,
		Warnings:          d.Warnings,
	}
	if d.RequiredWindow != nil {
		resp.RequiredWindow = &WindowResponse{
			Start: d.RequiredWindow.Start.String(),
			End:   d.RequiredWindow.End.String(),
		}
	}
	if rec != nil {
		r := NewAttendanceResponse(*rec)
		resp.Attendance = &r
	}
	return resp
}

type AttendanceResponse struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employee_id"`
	EmployeeName     *string   `json:"employee_name,omitempty"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	Shift            string    `json:"shift"`
	Status           Status    `json:"status"`
	ScannerID        *string   `json:"scanner_id,omitempty"`
	CredentialFormat string    `json:"credential_format,omitempty"`
	Warnings         []Warning `json:"warnings,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

func NewAttendanceResponse(rec AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		EmployeeName:     rec.EmployeeName,
		Date:             rec.Date.Format("2006-01-02"),
		Time:             rec.Time.Format("15:04:05"),
		Shift:            rec.Shift,
		Status:           rec.Status,
		ScannerID:        rec.ScannerID,
		CredentialFormat: rec.CredentialFormat,
		Warnings:         rec.Warnings,
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
	}
}
