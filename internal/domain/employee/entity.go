package employee

import (
	"time"
)

// Employee is referenced by every attendance entity through its NIK.
type Employee struct {
	ID               string // NIK, the stable business key
	FullName         string
	InvestorGroup    *string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
