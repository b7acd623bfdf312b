package repositories

import (
	"sync"

	"github.com/google/uuid"

	"zoru/internal/models"
)

// MockResetTokenRepository is an in-memory implementation of ResetTokenRepository.
type MockResetTokenRepository struct {
	tokens map[string]models.PasswordResetToken // keyed by token value
	mu     sync.RWMutex
}

// NewMockResetTokenRepository creates a new instance of MockResetTokenRepository.
func NewMockResetTokenRepository() *MockResetTokenRepository {
	return &MockResetTokenRepository{
		tokens: make(map[string]models.PasswordResetToken),
	}
}

// Create inserts a new reset token row.
func (r *MockResetTokenRepository) Create(token *models.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	r.tokens[token.Token] = *token
	return nil
}

// GetByToken returns a reset token row by its opaque token value.
func (r *MockResetTokenRepository) GetByToken(token string) (*models.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

// DeleteByEmail removes all reset tokens for an email.
func (r *MockResetTokenRepository) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, t := range r.tokens {
		if t.Email == email {
			delete(r.tokens, key)
		}
	}
	return nil
}

// Delete removes a single reset token row by its token value.
func (r *MockResetTokenRepository) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}
