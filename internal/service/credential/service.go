package credential

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type CredentialServiceImpl struct {
	credential.TokenRepository
	employee.EmployeeRepository
	issuer *Issuer
	clock  clock.Clock
}

func NewCredentialService(
	tokenRepo credential.TokenRepository,
	employeeRepo employee.EmployeeRepository,
	issuer *Issuer,
	clk clock.Clock,
) credential.Service {
	return &CredentialServiceImpl{
		TokenRepository:    tokenRepo,
		EmployeeRepository: employeeRepo,
		issuer:             issuer,
		clock:              clk,
	}
}

// IssueCredential implements credential.Service.
func (s *CredentialServiceImpl) IssueCredential(ctx context.Context, employeeID string) (credential.IssueResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return credential.IssueResponse{}, employee.ErrInvalidNIK
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return credential.IssueResponse{}, err
	}

	issuedAt := s.clock.Now()
	token, err := s.issuer.Issue(employeeID)
	if err != nil {
		return credential.IssueResponse{}, err
	}

	if err := s.TokenRepository.Save(ctx, credential.IssuedToken{
		EmployeeID: employeeID,
		Token:      token,
		IssuedAt:   issuedAt,
	}); err != nil {
		return credential.IssueResponse{}, fmt.Errorf("failed to save issued token: %w", err)
	}

	slog.Info("Credential issued", "employee_id", employeeID)

	return credential.IssueResponse{
		EmployeeID: employeeID,
		Token:      token,
		Payload:    Encode(employeeID, token),
		IssuedAt:   issuedAt.Format(time.RFC3339),
	}, nil
}

// Resolve implements credential.Service.
func (s *CredentialServiceImpl) Resolve(ctx context.Context, cred credential.Credential) (credential.Credential, error) {
	switch {
	case cred.IsURLAsserted():
		// Legacy scanners: identity is taken at face value and flagged by admission
		return cred, nil

	case cred.NeedsResolution():
		issued, err := s.TokenRepository.GetByToken(ctx, cred.Token)
		if err != nil {
			if errors.Is(err, credential.ErrTokenNotFound) {
				return credential.Credential{}, &credential.DecodeError{Reason: credential.ReasonUnknownToken, Input: cred.Token}
			}
			return credential.Credential{}, fmt.Errorf("failed to resolve token: %w", err)
		}
		cred.EmployeeID = issued.EmployeeID
		return cred, nil

	default:
		issued, err := s.TokenRepository.GetByEmployeeID(ctx, cred.EmployeeID)
		if err != nil {
			if errors.Is(err, credential.ErrTokenNotFound) {
				return credential.Credential{}, &credential.DecodeError{Reason: credential.ReasonUnknownToken, Input: cred.EmployeeID}
			}
			return credential.Credential{}, fmt.Errorf("failed to load current token: %w", err)
		}
		if subtle.ConstantTimeCompare([]byte(issued.Token), []byte(cred.Token)) != 1 {
			return credential.Credential{}, &credential.DecodeError{Reason: credential.ReasonUnknownToken, Input: cred.EmployeeID}
		}
		return cred, nil
	}
}
