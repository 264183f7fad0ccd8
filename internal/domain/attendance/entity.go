package attendance

import (
	"time"
)

// AttendanceRecord is written once per (EmployeeID, Date) by a successful admission.
type AttendanceRecord struct {
	ID               string
	EmployeeID       string
	Date             time.Time // local civil date, midnight
	Time             time.Time // scan instant, local civil time
	Shift            string
	Status           Status
	ScannerID        *string
	CredentialFormat string
	Warnings         []Warning
	CreatedAt        time.Time

	// DTO
	EmployeeName *string
}

type Status string

const (
	StatusPresent Status = "present"
	// StatusFlagged is a present record whose admission carried warnings
	StatusFlagged Status = "flagged"
)
