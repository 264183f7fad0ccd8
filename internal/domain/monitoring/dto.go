package monitoring

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type EnrollRequest struct {
	EmployeeID    string  `json:"employee_id"`
	InvestorGroup *string `json:"investor_group,omitempty"`
	LeaveOption   string  `json:"leave_option"`
	LastLeaveDate *string `json:"last_leave_date,omitempty"`
}

func (r *EnrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.LeaveOption, []string{"35", "70"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_option",
			Message: "leave_option must be 35 or 70",
		})
	}

	if r.LastLeaveDate != nil {
		if _, ok := validator.IsValidDate(*r.LastLeaveDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "last_leave_date",
				Message: "last_leave_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordLeaveRequest struct {
	EmployeeID    string  `json:"-"`
	LastLeaveDate string  `json:"last_leave_date"`
	LeaveEndDate  *string `json:"leave_end_date,omitempty"`
}

func (r *RecordLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, ok := validator.IsValidDate(r.LastLeaveDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "last_leave_date",
			Message: "last_leave_date must be YYYY-MM-DD",
		})
	}

	if r.LeaveEndDate != nil {
		end, endOK := validator.IsValidDate(*r.LeaveEndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_end_date",
				Message: "leave_end_date must be YYYY-MM-DD",
			})
		} else if ok && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_end_date",
				Message: ErrLeaveEndBeforeStart.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonitoringResponse struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	InvestorGroup  *string `json:"investor_group,omitempty"`
	LastLeaveDate  *string `json:"last_leave_date"`
	LeaveEndDate   *string `json:"leave_end_date,omitempty"`
	LeaveOption    int     `json:"leave_option"`
	MonitoringDays int     `json:"monitoring_days"`
	NextLeaveDate  *string `json:"next_leave_date"`
	Status         Status  `json:"status"`
	UpdatedAt      string  `json:"updated_at"`
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func NewMonitoringResponse(m LeaveRosterMonitoring) MonitoringResponse {
	return MonitoringResponse{
		EmployeeID:     m.EmployeeID,
		EmployeeName:   m.EmployeeName,
		InvestorGroup:  m.InvestorGroup,
		LastLeaveDate:  datePtrToString(m.LastLeaveDate),
		LeaveEndDate:   datePtrToString(m.LeaveEndDate),
		LeaveOption:    m.LeaveOption.Threshold(),
		MonitoringDays: m.MonitoringDays,
		NextLeaveDate:  datePtrToString(m.NextLeaveDate),
		Status:         m.Status,
		UpdatedAt:      m.UpdatedAt.Format(time.RFC3339),
	}
}
