package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidNIK       = errors.New("employee id must not be empty")
)
