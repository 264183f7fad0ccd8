package credential

import "context"

// TokenRepository stores the current issued token of each employee.
type TokenRepository interface {
	// Save replaces the current token of the employee
	Save(ctx context.Context, token IssuedToken) error

	// GetByToken returns the issued token record, ErrTokenNotFound if unknown
	GetByToken(ctx context.Context, token string) (IssuedToken, error)

	// GetByEmployeeID returns the employee's current token, ErrTokenNotFound if none
	GetByEmployeeID(ctx context.Context, employeeID string) (IssuedToken, error)
}
