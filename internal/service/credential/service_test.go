package credential

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (credential.Service, *clock.Fake) {
	t.Helper()

	store := memory.NewStore()
	store.PutEmployee(employee.Employee{ID: "123", FullName: "Budi Santoso", EmploymentStatus: employee.EmploymentStatusActive})

	clk := clock.NewFake(time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	issuer, err := NewIssuer("test-secret", clk)
	require.NoError(t, err)

	svc := NewCredentialService(memory.NewTokenRepository(store), memory.NewEmployeeRepository(store), issuer, clk)
	return svc, clk
}

func TestIssueCredential(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.IssueCredential(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "123", resp.EmployeeID)
	assert.Len(t, resp.Token, TokenLength)

	cred, err := Decode(resp.Payload)
	require.NoError(t, err)
	assert.Equal(t, resp.Token, cred.Token)

	_, err = svc.IssueCredential(ctx, "999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.IssueCredential(ctx, " ")
	assert.ErrorIs(t, err, employee.ErrInvalidNIK)
}

func TestResolve(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	resp, err := svc.IssueCredential(ctx, "123")
	require.NoError(t, err)

	t.Run("canonical with current token", func(t *testing.T) {
		cred, err := Decode(resp.Payload)
		require.NoError(t, err)

		got, err := svc.Resolve(ctx, cred)
		require.NoError(t, err)
		assert.Equal(t, "123", got.EmployeeID)
	})

	t.Run("compact resolves identity", func(t *testing.T) {
		cred, err := Decode("https://app.example.com/q/" + resp.Token)
		require.NoError(t, err)

		got, err := svc.Resolve(ctx, cred)
		require.NoError(t, err)
		assert.Equal(t, "123", got.EmployeeID)
		assert.Equal(t, credential.FormatCompact, got.Format)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := svc.Resolve(ctx, credential.Credential{EmployeeID: "123", Token: "forged", Format: credential.FormatJSON})
		de, ok := credential.AsDecodeError(err)
		require.True(t, ok)
		assert.Equal(t, credential.ReasonUnknownToken, de.Reason)
	})

	t.Run("never issued", func(t *testing.T) {
		_, err := svc.Resolve(ctx, credential.Credential{EmployeeID: "456", Token: "abc", Format: credential.FormatJSON})
		de, ok := credential.AsDecodeError(err)
		require.True(t, ok)
		assert.Equal(t, credential.ReasonUnknownToken, de.Reason)
	})

	t.Run("url asserted passes through", func(t *testing.T) {
		cred, err := Decode("https://app.example.com/mobile-driver?nik=777")
		require.NoError(t, err)

		got, err := svc.Resolve(ctx, cred)
		require.NoError(t, err)
		assert.Equal(t, "777", got.EmployeeID)
		assert.True(t, got.IsURLAsserted())
	})

	t.Run("reissue revokes the old token", func(t *testing.T) {
		clk.Advance(time.Minute)
		_, err := svc.IssueCredential(ctx, "123")
		require.NoError(t, err)

		cred, err := Decode(resp.Payload)
		require.NoError(t, err)
		_, err = svc.Resolve(ctx, cred)
		_, ok := credential.AsDecodeError(err)
		assert.True(t, ok)
	})
}
