package employee

import "context"

// EmployeeRepository is the read-only view of HR-owned employee records.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when the NIK is unknown
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns employees with employment_status = 'active'
	ListActive(ctx context.Context) ([]Employee, error)
}
