package credential

import "context"

// IssueResponse is returned to the administrator printing a badge.
type IssueResponse struct {
	EmployeeID string `json:"employee_id"`
	Token      string `json:"token"`
	Payload    string `json:"payload"`
	IssuedAt   string `json:"issued_at"`
}

// Service issues credentials and verifies decoded ones against the token store.
type Service interface {
	// IssueCredential issues and stores a new token, returning the canonical QR payload
	IssueCredential(ctx context.Context, employeeID string) (IssueResponse, error)

	// Resolve performs the Decoded -> Verified step for a decoded credential
	Resolve(ctx context.Context, cred Credential) (Credential, error)
}
