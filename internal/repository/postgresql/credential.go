package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type tokenRepositoryImpl struct {
	db *database.DB
}

func NewTokenRepository(db *database.DB) credential.TokenRepository {
	return &tokenRepositoryImpl{db: db}
}

// Save implements credential.TokenRepository.
func (r *tokenRepositoryImpl) Save(ctx context.Context, token credential.IssuedToken) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO credential_tokens (employee_id, token, issued_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id) DO UPDATE
		SET token = EXCLUDED.token, issued_at = EXCLUDED.issued_at
	`

	if _, err := q.Exec(ctx, query, token.EmployeeID, token.Token, token.IssuedAt); err != nil {
		if database.IsForeignKeyViolation(err) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to save credential token: %w", err)
	}
	return nil
}

// GetByToken implements credential.TokenRepository.
func (r *tokenRepositoryImpl) GetByToken(ctx context.Context, token string) (credential.IssuedToken, error) {
	return r.getOne(ctx, `SELECT employee_id, token, issued_at FROM credential_tokens WHERE token = $1`, token)
}

// GetByEmployeeID implements credential.TokenRepository.
func (r *tokenRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (credential.IssuedToken, error) {
	return r.getOne(ctx, `SELECT employee_id, token, issued_at FROM credential_tokens WHERE employee_id = $1`, employeeID)
}

func (r *tokenRepositoryImpl) getOne(ctx context.Context, query string, arg string) (credential.IssuedToken, error) {
	q := GetQuerier(ctx, r.db)

	var t credential.IssuedToken
	if err := q.QueryRow(ctx, query, arg).Scan(&t.EmployeeID, &t.Token, &t.IssuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.IssuedToken{}, credential.ErrTokenNotFound
		}
		return credential.IssuedToken{}, fmt.Errorf("failed to get credential token: %w", err)
	}
	return t, nil
}
