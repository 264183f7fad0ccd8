package credential

import (
	"errors"
	"fmt"
)

// Decode failure reasons
const (
	ReasonBlank              = "blank"
	ReasonMalformedJSON      = "malformed_json"
	ReasonMissingFields      = "missing_fields"
	ReasonUnrecognizedFormat = "unrecognized_format"
	ReasonUnknownToken       = "unknown_token"
	ReasonTooLarge           = "too_large"
)

// DecodeError is the typed failure value for payloads that cannot become a Credential.
type DecodeError struct {
	Reason string
	Input  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid qr payload: %s", e.Reason)
}

// AsDecodeError unwraps err into a *DecodeError when possible.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrTokenNotFound    = errors.New("credential token not found")
	ErrEmptyEmployeeID  = errors.New("employee id is required to issue a credential")
	ErrIssuerMissingKey = errors.New("credential issuer requires a shared secret")
)
