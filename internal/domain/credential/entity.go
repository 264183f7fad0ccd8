package credential

import "time"

// Format identifies which scanned payload shape produced a Credential.
type Format string

const (
	FormatJSON    Format = "json"
	FormatURLNIK  Format = "url_nik"
	FormatCompact Format = "compact"
	FormatURLData Format = "url_data"
)

const (
	// TokenAssertedByURL marks a credential whose identity came from a URL
	// query parameter and is not bound to any issued token.
	TokenAssertedByURL = "__url_asserted__"

	// IdentityFromToken marks a credential that only carries a token; the
	// employee must be resolved server-side from the token store.
	IdentityFromToken = "__resolve_from_token__"
)

// Credential is the ephemeral (employee, token) pair decoded from a QR payload.
type Credential struct {
	EmployeeID string
	Token      string
	Format     Format
}

// IsURLAsserted reports whether the identity was asserted by URL only.
func (c Credential) IsURLAsserted() bool {
	return c.Token == TokenAssertedByURL
}

// NeedsResolution reports whether the employee must be looked up from the token.
func (c Credential) NeedsResolution() bool {
	return c.EmployeeID == IdentityFromToken
}

// IssuedToken is the server-side record of the current token of an employee.
type IssuedToken struct {
	EmployeeID string
	Token      string
	IssuedAt   time.Time
}
