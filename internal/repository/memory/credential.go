package memory

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
)

type tokenRepositoryImpl struct {
	store *Store
}

func NewTokenRepository(store *Store) credential.TokenRepository {
	return &tokenRepositoryImpl{store: store}
}

// Save implements credential.TokenRepository. The previous token of the
// employee stops resolving.
func (r *tokenRepositoryImpl) Save(ctx context.Context, token credential.IssuedToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if prev, ok := r.store.tokens[token.EmployeeID]; ok {
		delete(r.store.tokenIndex, prev.Token)
	}
	r.store.tokens[token.EmployeeID] = token
	r.store.tokenIndex[token.Token] = token.EmployeeID
	return nil
}

// GetByToken implements credential.TokenRepository.
func (r *tokenRepositoryImpl) GetByToken(ctx context.Context, token string) (credential.IssuedToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	employeeID, ok := r.store.tokenIndex[token]
	if !ok {
		return credential.IssuedToken{}, credential.ErrTokenNotFound
	}
	return r.store.tokens[employeeID], nil
}

// GetByEmployeeID implements credential.TokenRepository.
func (r *tokenRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (credential.IssuedToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tokens[employeeID]
	if !ok {
		return credential.IssuedToken{}, credential.ErrTokenNotFound
	}
	return t, nil
}
