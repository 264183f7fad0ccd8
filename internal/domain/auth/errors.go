package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidRole      = errors.New("unknown role")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSubjectRequired  = errors.New("token subject is required")
)
